package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/fracture-planner/pkg/version"
)

type VersionOptions struct {
	Output string

	out io.Writer
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
		out:    os.Stdout,
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print Planner version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()
	if o.Output == "" {
		_, err := fmt.Fprintf(o.out, "Planner Version: %s\n", versionInfo.String())
		return err
	}
	return printObject(o.out, o.Output, versionInfo, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "VERSION\t%s\n", versionInfo.GitVersion)
		fmt.Fprintf(w, "COMMIT\t%s\n", versionInfo.GitCommit)
		fmt.Fprintf(w, "BUILD DATE\t%s\n", versionInfo.BuildDate)
		fmt.Fprintf(w, "GO\t%s\n", versionInfo.GoVersion)
		fmt.Fprintf(w, "PLATFORM\t%s\n", versionInfo.Platform)
	})
}
