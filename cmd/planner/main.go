package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kubev2v/training-planner/internal/cli"
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
		Short: "planner recommends training hyperparameters and projects training time and cost.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdHardware())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
