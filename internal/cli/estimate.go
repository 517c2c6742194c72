package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	api "github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/estimation"
	"github.com/chasta/skyguard/internal/handlers/v1alpha1/mappers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type EstimateOptions struct {
	OutputOptions

	BuildingType    string
	Height          float64
	Area            float64
	LightningPoints int
	SystemType      string
	Strict          bool

	request estimation.Request
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		BuildingType:    string(estimation.BuildingTypeHouse),
		LightningPoints: 1,
		SystemType:      string(estimation.SystemTypeConventional),
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of a lightning protection installation.",
		Example: "  skyguard estimate --building-type Gedung --height 20 --area 800 --points 3\n" +
			"  skyguard estimate --building-type tower --height 40 --area 500 --points 5 --system elektrostatis -o yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.OutputOptions.Bind(fs)

	fs.StringVar(&o.BuildingType, "building-type", o.BuildingType, fmt.Sprintf("Building type. One of: (%s).", strings.Join(buildingTypeNames(), ", ")))
	fs.Float64Var(&o.Height, "height", o.Height, "Building height in meters")
	fs.Float64Var(&o.Area, "area", o.Area, "Floor area in square meters")
	fs.IntVar(&o.LightningPoints, "points", o.LightningPoints, "Number of lightning points")
	fs.StringVar(&o.SystemType, "system", o.SystemType, "System type. One of: (Konvensional, Elektrostatis).")
	fs.BoolVar(&o.Strict, "strict", o.Strict, "Reject unknown building types instead of pricing them as a house")
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	bt := estimation.BuildingType(strings.TrimSpace(o.BuildingType))
	if parsed, ok := estimation.ParseBuildingType(o.BuildingType); ok {
		bt = parsed
	}
	st := estimation.SystemType(strings.TrimSpace(o.SystemType))
	if parsed, ok := estimation.ParseSystemType(o.SystemType); ok {
		st = parsed
	}

	o.request = estimation.Request{
		BuildingType:     bt,
		HeightMeters:     o.Height,
		AreaSquareMeters: o.Area,
		LightningPoints:  o.LightningPoints,
		SystemType:       st,
	}
	return nil
}

func (o *EstimateOptions) Validate(args []string) error {
	return o.OutputOptions.Validate()
}

func (o *EstimateOptions) Run(ctx context.Context, w io.Writer) error {
	result, err := estimation.NewEstimator(estimation.WithStrictBuildingType(o.Strict)).Estimate(o.request)
	if err != nil {
		return err
	}

	estimate := mappers.EstimateToApi(result)
	return o.Print(w, estimate, func(w io.Writer) error {
		return printEstimate(w, estimate)
	})
}

func printEstimate(w io.Writer, e api.Estimate) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "ESTIMATED COST\t%s\n", e.FormattedCost)
	fmt.Fprintf(tw, "PACKAGE\t%s\n", e.Package)
	fmt.Fprintf(tw, "BASE COST\t%s\n", e.Breakdown.BaseCost)
	fmt.Fprintf(tw, "HEIGHT MULTIPLIER\t%s\n", e.Breakdown.HeightMultiplier)
	fmt.Fprintf(tw, "AREA MULTIPLIER\t%s\n", e.Breakdown.AreaMultiplier)
	fmt.Fprintf(tw, "POINTS COST\t%s\n", e.Breakdown.PointsCost)
	fmt.Fprintf(tw, "SYSTEM MULTIPLIER\t%s\n", e.Breakdown.SystemMultiplier)
	if e.Breakdown.FellBack {
		fmt.Fprintf(tw, "NOTE\tunknown building type, priced as %s\n", estimation.BuildingTypeHouse)
	}
	return tw.Flush()
}

func buildingTypeNames() []string {
	names := []string{}
	for _, bt := range estimation.BuildingTypes() {
		names = append(names, string(bt))
	}
	return names
}
