package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

type SensitivityOptions struct {
	GlobalOptions

	Output string
}

func DefaultSensitivityOptions() *SensitivityOptions {
	return &SensitivityOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdSensitivity() *cobra.Command {
	o := DefaultSensitivityOptions()
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Show how length, width and pressure react to halving and doubling key parameters.",
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

func (o *SensitivityOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
}

func (o *SensitivityOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *SensitivityOptions) Run(ctx context.Context, args []string) error {
	run, err := o.compute(ctx)
	if err != nil {
		return fmt.Errorf("computing %s: %w", o.Model, err)
	}

	var rows []estimation.SensitivityRow
	if run.Sensitivity != nil {
		rows = run.Sensitivity.Data
	}
	return printObject(o.out, o.Output, rows, func(w *tabwriter.Writer) {
		printSensitivityTable(w, rows)
	})
}

func printSensitivityTable(w *tabwriter.Writer, rows []estimation.SensitivityRow) {
	fmt.Fprintln(w, "PARAMETER\tFACTOR\tLENGTH %\tWIDTH %\tPRESSURE %")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\tx%g\t%+.1f\t%+.1f\t%+.1f\n", r.Parameter, r.Factor, r.LengthChange, r.WidthChange, r.PressureChange)
	}
}
