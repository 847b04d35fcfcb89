package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kubev2v/fracture-planner/internal/cli"
)

func main() {
	command := NewPlannerCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPlannerCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner [flags] [options]",
		Short: "planner estimates hydraulic fracture geometry.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdCompute())
	cmd.AddCommand(cli.NewCmdSensitivity())
	cmd.AddCommand(cli.NewCmdCompare())
	cmd.AddCommand(cli.NewCmdExport())
	cmd.AddCommand(cli.NewCmdInfo())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
