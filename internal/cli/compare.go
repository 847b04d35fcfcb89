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

type CompareOptions struct {
	GlobalOptions

	Output string
}

func DefaultCompareOptions() *CompareOptions {
	return &CompareOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdCompare() *cobra.Command {
	o := DefaultCompareOptions()
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every model on the same input.",
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

func (o *CompareOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
}

func (o *CompareOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *CompareOptions) Run(ctx context.Context, args []string) error {
	system := o.system()
	comparisons, err := o.Service().CompareModels(ctx, system, mappers.InputFromApi(o.request().Input))
	if err != nil {
		return fmt.Errorf("comparing models: %w", err)
	}

	out := mappers.ComparisonToApi(system, comparisons)
	return printObject(o.out, o.Output, out, func(w *tabwriter.Writer) {
		printComparisonTable(w, out)
	})
}

func printComparisonTable(w *tabwriter.Writer, cmp v1alpha1.Comparison) {
	u := cmp.Units
	fmt.Fprintf(w, "MODEL\tREGIME\tLENGTH (%s)\tMAX WIDTH (%s)\tNET PRESSURE (%s)\tEFFICIENCY %%\tERROR\n", u.Length, u.Width, u.Pressure)
	for _, r := range cmp.Results {
		if r.Result == nil {
			fmt.Fprintf(w, "%s\t\t\t\t\t\t%s\n", r.Model, r.Error)
			continue
		}
		res := r.Result
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\t\n", r.Model, res.Regime, num(res.Length), num(res.MaxWidth), num(res.NetPressure), res.Efficiency*100)
	}
}
