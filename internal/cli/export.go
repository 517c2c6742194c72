package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chasta/skyguard/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ExportOptions struct {
	GlobalOptions
	LeadFilterOptions

	File string
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdExport() *cobra.Command {
	o := DefaultExportOptions()
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Download the leads as an xlsx workbook.",
		Example: "  skyguard export --from 2025-01-01 -f leads.xlsx -t $TOKEN",
		Args:    cobra.NoArgs,
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

func (o *ExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.LeadFilterOptions.Bind(fs)

	fs.StringVarP(&o.File, "file", "f", o.File, "Destination file, defaults to leads-<date>.xlsx")
	util.Must(cobra.MarkFlagFilename(fs, "file", "xlsx"))
}

func (o *ExportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if o.File == "" {
		o.File = fmt.Sprintf("leads-%s.xlsx", time.Now().Format("20060102"))
	}
	return nil
}

func (o *ExportOptions) Run(ctx context.Context, w io.Writer) error {
	f, err := os.Create(o.File)
	if err != nil {
		return fmt.Errorf("creating %s: %w", o.File, err)
	}
	defer f.Close()

	n, err := o.Client().ExportCalculations(ctx, o.LeadFilterOptions.Query(), f)
	if err != nil {
		_ = os.Remove(o.File)
		return fmt.Errorf("exporting calculations: %w", err)
	}

	_, err = fmt.Fprintf(w, "wrote %d bytes to %s\n", n, o.File)
	return err
}
