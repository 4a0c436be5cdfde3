package main

import (
	"github.com/spf13/cobra"

	"github.com/kubev2v/training-planner/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "planner-api",
	Short: "planner-api serves the Training Planner API.",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cli.NewCmdVersion())
}
