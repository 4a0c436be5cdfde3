package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/training-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/training-planner/internal/service"
)

type HardwareOptions struct {
	GlobalOptions

	Output string
}

func DefaultHardwareOptions() *HardwareOptions {
	return &HardwareOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdHardware() *cobra.Command {
	o := DefaultHardwareOptions()
	cmd := &cobra.Command{
		Use:     "hardware",
		Aliases: []string{"hw"},
		Short:   "List the hardware tiers used for time and cost projections.",
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

func (o *HardwareOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *HardwareOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *HardwareOptions) Run(ctx context.Context, w io.Writer) error {
	tiers := service.NewHardwareService(o.Catalog()).List(ctx)

	if o.Output == jsonFormat || o.Output == yamlFormat {
		return printStructured(w, mappers.HardwareTierListToApi(tiers), o.Output)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "KEY\tMIN/STEP\tUSD/HOUR\tGPU MEMORY (GB)\tDESCRIPTION")
	for _, t := range tiers {
		fmt.Fprintf(tw, "%s\t%g\t%.2f\t%g\t%s\n", t.Key, t.TimePerStepMinutes, t.CostPerHourUSD, t.GPUMemoryGB, t.Description)
	}
	return tw.Flush()
}
