package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"

	"github.com/kubev2v/fracture-planner/internal/service"
)

var legalReportFormats = []string{
	string(service.ReportFormatCSV),
	string(service.ReportFormatHTML),
	string(service.ReportFormatXLSX),
}

type ExportOptions struct {
	GlobalOptions

	Format    string
	File      string
	NoHistory bool
	NoProfile bool
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Format:        string(service.ReportFormatCSV),
	}
}

func NewCmdExport() *cobra.Command {
	o := DefaultExportOptions()
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compute a fracture and write it as a CSV, HTML or XLSX report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.Format, "format", o.Format, fmt.Sprintf("Report format. One of: (%s).", strings.Join(legalReportFormats, ", ")))
	fs.StringVar(&o.File, "file", o.File, "Output file. Defaults to a generated name in the current directory, '-' writes to stdout.")
	fs.BoolVar(&o.NoHistory, "no-history", o.NoHistory, "Leave the time history out of the report")
	fs.BoolVar(&o.NoProfile, "no-profile", o.NoProfile, "Leave the width profile out of the report")
}

func (o *ExportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.Contains(legalReportFormats, o.Format) {
		return fmt.Errorf("report format must be one of %s", strings.Join(legalReportFormats, ", "))
	}
	return nil
}

func (o *ExportOptions) Run(ctx context.Context, args []string) error {
	run, err := o.compute(ctx)
	if err != nil {
		return fmt.Errorf("computing %s: %w", o.Model, err)
	}

	report, err := service.NewReportService(nil).Render(run, service.ReportOptions{
		Format:         service.ReportFormat(o.Format),
		IncludeHistory: !o.NoHistory,
		IncludeProfile: !o.NoProfile,
	})
	if err != nil {
		return err
	}

	if o.File == "-" {
		_, err = o.out.Write(report.Content)
		return err
	}

	file := o.File
	if file == "" {
		file = report.Filename
	}
	if err := os.WriteFile(file, report.Content, 0o600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(o.out, "report written to %s\n", file)
	return nil
}
