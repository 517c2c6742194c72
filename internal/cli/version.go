package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/chasta/skyguard/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type VersionOptions struct {
	OutputOptions
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print SkyGuard version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.OutputOptions.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	o.OutputOptions.Bind(fs)
}

func (o *VersionOptions) Run(ctx context.Context, w io.Writer) error {
	versionInfo := version.Get()
	return o.Print(w, versionInfo, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "SkyGuard Version: %s\n", versionInfo.String())
		return err
	})
}
