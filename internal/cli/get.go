package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	api "github.com/chasta/skyguard/api/v1alpha1"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	CalculationKind = "calculation"
)

var (
	pluralKinds = map[string]string{
		CalculationKind: "calculations",
	}
)

// LeadFilterOptions are the listing filters shared by get and export.
type LeadFilterOptions struct {
	Package      string
	BuildingType string
	Email        string
	From         string
	To           string
	Sort         string
}

func (o *LeadFilterOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Package, "package", o.Package, "Only leads recommended this package")
	fs.StringVar(&o.BuildingType, "building-type", o.BuildingType, "Only leads for this building type")
	fs.StringVar(&o.Email, "email", o.Email, "Only leads with this email")
	fs.StringVar(&o.From, "from", o.From, "Only leads created at or after this date (YYYY-MM-DD or RFC3339)")
	fs.StringVar(&o.To, "to", o.To, "Only leads created up to this date (YYYY-MM-DD or RFC3339)")
	fs.StringVar(&o.Sort, "sort", o.Sort, "Order of the leads: newest, oldest or cost")
}

func (o *LeadFilterOptions) Query() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"package":      o.Package,
		"buildingType": o.BuildingType,
		"email":        o.Email,
		"from":         o.From,
		"to":           o.To,
		"sort":         o.Sort,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}

type GetOptions struct {
	GlobalOptions
	OutputOptions
	LeadFilterOptions

	Limit  int
	Offset int
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
		Example: "  skyguard get calculations --package \"Paket Industri\" -t $TOKEN\n" +
			"  skyguard get calculation/0b6d7c1e-3f0a-4c39-9a57-6f4f7a1d2b11 -o yaml -t $TOKEN",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.OutputOptions.Bind(fs)
	o.LeadFilterOptions.Bind(fs)

	fs.IntVar(&o.Limit, "limit", o.Limit, "Maximum number of leads to list")
	fs.IntVar(&o.Offset, "offset", o.Offset, "Number of leads to skip")
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if _, _, err := parseAndValidateKindId(args[0]); err != nil {
		return err
	}

	return o.OutputOptions.Validate()
}

func (o *GetOptions) Run(ctx context.Context, w io.Writer, args []string) error {
	c := o.Client()

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	switch {
	case kind == CalculationKind && id != nil:
		calculation, err := c.GetCalculation(ctx, *id)
		if err != nil {
			return fmt.Errorf("reading %s/%s: %w", kind, id, err)
		}
		return o.Print(w, calculation, func(w io.Writer) error {
			return printCalculationsTable(w, *calculation)
		})
	case kind == CalculationKind:
		query := o.LeadFilterOptions.Query()
		if o.Limit > 0 {
			query.Set("limit", strconv.Itoa(o.Limit))
		}
		if o.Offset > 0 {
			query.Set("offset", strconv.Itoa(o.Offset))
		}

		list, err := c.ListCalculations(ctx, query)
		if err != nil {
			return fmt.Errorf("listing %s: %w", plural(kind), err)
		}
		return o.Print(w, list, func(w io.Writer) error {
			if err := printCalculationsTable(w, list.Items...); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "\nshowing %d of %d\n", len(list.Items), list.Total)
			return err
		})
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
}

func printCalculationsTable(w io.Writer, calculations ...api.Calculation) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tNAME\tPHONE\tBUILDING\tESTIMATE\tPACKAGE")
	for _, c := range calculations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Id,
			c.CreatedAt.Format(api.DateLayout),
			c.Name,
			c.Phone,
			c.BuildingType,
			c.FormattedCost,
			c.Package,
		)
	}
	return tw.Flush()
}

func parseAndValidateKindId(arg string) (string, *uuid.UUID, error) {
	kind, idStr, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}
	if len(idStr) == 0 {
		return kind, nil, nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid ID: %w", err)
	}
	return kind, &id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}
