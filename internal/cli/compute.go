package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/handlers/v1alpha1/mappers"
)

type ComputeOptions struct {
	GlobalOptions

	Output string
}

func DefaultComputeOptions() *ComputeOptions {
	return &ComputeOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdCompute() *cobra.Command {
	o := DefaultComputeOptions()
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Estimate the fracture geometry for one model.",
		Example: "  planner compute --model pkn --young-modulus 3e10 --poisson-ratio 0.25 --sigma-min 3e7 \\\n" +
			"    --leakoff 5e-5 --viscosity 0.1 --rate 0.05 --height 30 --toughness 1e6 --time 1800",
		Args: cobra.NoArgs,
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

func (o *ComputeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
}

func (o *ComputeOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *ComputeOptions) Run(ctx context.Context, args []string) error {
	run, err := o.compute(ctx)
	if err != nil {
		return fmt.Errorf("computing %s: %w", o.Model, err)
	}

	out := mappers.RunToApi(run, false)
	return printObject(o.out, o.Output, out, func(w *tabwriter.Writer) {
		printResultTable(w, out)
	})
}

func printResultTable(w *tabwriter.Writer, run v1alpha1.Run) {
	res, u := run.Result, run.Units

	fmt.Fprintf(w, "MODEL\t%s\n", res.Model)
	fmt.Fprintf(w, "REGIME\t%s\n", res.Regime)
	fmt.Fprintf(w, "LENGTH\t%s\t%s\n", num(res.Length), u.Length)
	fmt.Fprintf(w, "LENGTH (NO LEAKOFF)\t%s\t%s\n", num(res.NoLeakoffLength), u.Length)
	fmt.Fprintf(w, "LENGTH (HIGH LEAKOFF)\t%s\t%s\n", num(res.HighLeakoffLength), u.Length)
	fmt.Fprintf(w, "MAX WIDTH\t%s\t%s\n", num(res.MaxWidth), u.Width)
	fmt.Fprintf(w, "AVG WIDTH\t%s\t%s\n", num(res.AvgWidth), u.Width)
	fmt.Fprintf(w, "NET PRESSURE\t%s\t%s\n", num(res.NetPressure), u.Pressure)
	fmt.Fprintf(w, "WELLBORE PRESSURE\t%s\t%s\n", num(res.WellborePressure), u.Pressure)
	fmt.Fprintf(w, "EFFICIENCY\t%.1f\t%%\n", res.Efficiency*100)
	fmt.Fprintf(w, "INJECTED VOLUME\t%s\t%s\n", num(res.InjectedVolume), u.Volume)
	fmt.Fprintf(w, "CONTAINED VOLUME\t%s\t%s\n", num(res.ContainedVolume), u.Volume)
	fmt.Fprintf(w, "LEAKED VOLUME\t%s\t%s\n", num(res.LeakedVolume), u.Volume)
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "WARNING\t%s\n", warning)
	}
}
