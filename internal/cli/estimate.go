package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	api "github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/estimation/calculators"
	"github.com/kubev2v/training-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/training-planner/internal/handlers/validator"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/internal/service/report/types"
)

var (
	legalReportTypes = []string{string(types.ReportFormatCSV), string(types.ReportFormatHTML), string(types.ReportFormatXLSX)}
)

type EstimateOptions struct {
	GlobalOptions

	From           string
	Output         string
	Report         string
	ReportFile     string
	LaTeX          bool
	SkipGPUMemory  bool
	NoColor        bool
	AssetCount     int
	ModelType      string
	LoRA           bool
	LoRARank       int
	Finetune       bool
	Advanced       bool
	Width          int
	Height         int
	Channels       int
	PrecisionBits  int
	GPUMemoryGB    float64
	Hardware       string
	BatchSize      int
	LearningRate   float64
	TotalSteps     int
	Epochs         int
	StepsPerEpoch  int
	Optimizer      string
	changedFlags   func(name string) bool
	requestFromCLI *api.EstimationRequest
}

func DefaultEstimateOptions() *EstimateOptions {
	image := estimation.DefaultImageGeometry()
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
		ModelType:     string(estimation.ModelTypeVAE),
		Width:         image.Width,
		Height:        image.Height,
		Channels:      image.Channels,
		PrecisionBits: image.PrecisionBits,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate [flags]",
		Short: "Recommend training hyperparameters and project time and cost.",
		Example: `  planner estimate --assets 1000 --model-type Transformer --lora --hardware p3.2xlarge
  planner estimate --from request.yaml -o json
  planner estimate --assets 200 --model-type VAE --report html --report-file plan.html`,
		Args: cobra.NoArgs,
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

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.From, "from", "f", o.From, "Read the request from a YAML or JSON file. Flags override the file.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVar(&o.Report, "report", o.Report, fmt.Sprintf("Also render a report. One of: (%s).", strings.Join(legalReportTypes, ", ")))
	fs.StringVar(&o.ReportFile, "report-file", o.ReportFile, "Where to write the report. Defaults to a timestamped file in the current directory.")
	fs.BoolVar(&o.LaTeX, "latex", o.LaTeX, "Print the derivation as LaTeX equations")
	fs.BoolVar(&o.SkipGPUMemory, "skip-gpu-memory-check", o.SkipGPUMemory, "Do not warn when the GPU memory is missing")
	fs.BoolVar(&o.NoColor, "no-color", o.NoColor, "Disable colored output")

	fs.IntVar(&o.AssetCount, "assets", o.AssetCount, "Number of training assets")
	fs.StringVar(&o.ModelType, "model-type", o.ModelType, "Model type. One of: VAE, CNN, ResNet, Transformer, \"Multimodal Diffusion Transformer Architecture\", DNN.")
	fs.BoolVar(&o.LoRA, "lora", o.LoRA, "Train low-rank adapters")
	fs.IntVar(&o.LoRARank, "lora-rank", o.LoRARank, "LoRA rank")
	fs.BoolVar(&o.Finetune, "finetune", o.Finetune, "Fine-tune a pretrained model")
	fs.BoolVar(&o.Advanced, "advanced", o.Advanced, "Advanced mode: accept the image geometry flags and echo them in reports")
	fs.IntVar(&o.Width, "width", o.Width, "Image width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "Image height in pixels")
	fs.IntVar(&o.Channels, "channels", o.Channels, "Image channels")
	fs.IntVar(&o.PrecisionBits, "precision", o.PrecisionBits, "Image precision in bits (16 or 32)")
	fs.Float64Var(&o.GPUMemoryGB, "gpu-memory", o.GPUMemoryGB, "GPU memory in GB")
	fs.StringVar(&o.Hardware, "hardware", o.Hardware, "Hardware tier key. See 'planner hardware'.")
	fs.IntVar(&o.BatchSize, "batch-size", o.BatchSize, "Batch size override")
	fs.Float64Var(&o.LearningRate, "learning-rate", o.LearningRate, "Learning rate override")
	fs.IntVar(&o.TotalSteps, "total-steps", o.TotalSteps, "Total steps override")
	fs.IntVar(&o.Epochs, "epochs", o.Epochs, "Epochs override")
	fs.IntVar(&o.StepsPerEpoch, "steps-per-epoch", o.StepsPerEpoch, "Steps per epoch override")
	fs.StringVar(&o.Optimizer, "optimizer", o.Optimizer, "Optimizer override")
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.changedFlags = cmd.Flags().Changed
	if o.NoColor {
		disableColor()
	}

	req, err := o.request()
	if err != nil {
		return err
	}
	o.requestFromCLI = req
	return nil
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if err := validateOutput(o.Output); err != nil {
		return err
	}

	if len(o.Report) > 0 && !funk.Contains(legalReportTypes, o.Report) {
		return fmt.Errorf("report format must be one of %s", strings.Join(legalReportTypes, ", "))
	}

	if len(o.ReportFile) > 0 && len(o.Report) == 0 {
		return fmt.Errorf("--report-file requires --report")
	}

	v := validator.NewValidator()
	v.Register(validator.NewEstimationValidationRules(o.Catalog())...)
	return v.Struct(*o.requestFromCLI)
}

func (o *EstimateOptions) Run(ctx context.Context, w io.Writer) error {
	form, err := mappers.EstimationRequestToDomain(*o.requestFromCLI)
	if err != nil {
		return err
	}

	srv := service.NewEstimationService(o.Catalog(), calculators.WithGPUMemoryCheck(!o.SkipGPUMemory))

	result, err := srv.Estimate(ctx, form)
	if err != nil {
		return err
	}

	if o.Output == jsonFormat || o.Output == yamlFormat {
		if err := printStructured(w, mappers.EstimationResultToApi(result), o.Output); err != nil {
			return err
		}
	} else {
		o.printResult(w, result)
	}

	if len(o.Report) == 0 {
		return nil
	}

	rendered, err := srv.RenderReport(ctx, form, result, types.ReportFormat(o.Report))
	if err != nil {
		return err
	}
	path := o.ReportFile
	if path == "" {
		path = rendered.Filename
	}
	if err := os.WriteFile(path, rendered.Content, 0o600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(w, "Report written to %s\n", path)
	return nil
}

// request builds the API request from --from and the flags the user set.
func (o *EstimateOptions) request() (*api.EstimationRequest, error) {
	req := &api.EstimationRequest{ModelType: o.ModelType}
	if o.From != "" {
		data, err := os.ReadFile(o.From)
		if err != nil {
			return nil, fmt.Errorf("reading request file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, req); err != nil {
			return nil, fmt.Errorf("parsing request file %s: %w", o.From, err)
		}
	}

	changed := o.changedFlags
	if changed == nil {
		changed = func(string) bool { return false }
	}
	fromFile := o.From != ""

	if changed("assets") || !fromFile {
		req.AssetCount = o.AssetCount
	}
	if changed("model-type") || (fromFile && req.ModelType == "") {
		req.ModelType = o.ModelType
	}
	if changed("lora") || !fromFile {
		req.Lora = o.LoRA
	}
	if changed("finetune") || !fromFile {
		req.Finetune = o.Finetune
	}
	if changed("advanced") || !fromFile {
		req.Advanced = o.Advanced
	}
	if changed("lora-rank") {
		req.LoraRank = &o.LoRARank
	}
	if changed("gpu-memory") {
		req.GpuMemoryGb = &o.GPUMemoryGB
	}
	if changed("hardware") {
		req.Hardware = &o.Hardware
	}
	if changed("batch-size") {
		req.BatchSize = &o.BatchSize
	}
	if changed("learning-rate") {
		req.LearningRate = &o.LearningRate
	}
	if changed("total-steps") {
		req.TotalSteps = &o.TotalSteps
	}
	if changed("epochs") {
		req.Epochs = &o.Epochs
	}
	if changed("steps-per-epoch") {
		req.StepsPerEpoch = &o.StepsPerEpoch
	}
	if changed("optimizer") {
		req.Optimizer = &o.Optimizer
	}

	if changed("width") || changed("height") || changed("channels") || changed("precision") {
		if req.Image == nil {
			req.Image = &api.ImageGeometry{Width: o.Width, Height: o.Height, Channels: o.Channels, PrecisionBits: o.PrecisionBits}
		}
		if changed("width") {
			req.Image.Width = o.Width
		}
		if changed("height") {
			req.Image.Height = o.Height
		}
		if changed("channels") {
			req.Image.Channels = o.Channels
		}
		if changed("precision") {
			req.Image.PrecisionBits = o.PrecisionBits
		}
	}

	return req, nil
}

func (o *EstimateOptions) printResult(w io.Writer, result *estimation.Result) {
	p := result.Parameters

	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUE")
	fmt.Fprintf(tw, "Batch Size\t%d\n", p.BatchSize)
	fmt.Fprintf(tw, "Learning Rate\t%g\n", p.LearningRate)
	fmt.Fprintf(tw, "Optimizer\t%s\n", p.Optimizer)
	if p.LoRARank > 0 {
		fmt.Fprintf(tw, "LoRA Rank\t%d\n", p.LoRARank)
	}
	fmt.Fprintf(tw, "Steps per Epoch\t%d\n", p.StepsPerEpoch)
	fmt.Fprintf(tw, "Epochs\t%d\n", p.Epochs)
	fmt.Fprintf(tw, "Total Steps\t%d\n", p.TotalSteps)
	if p.GPUMemoryGB > 0 {
		fmt.Fprintf(tw, "GPU Memory (GB)\t%g\n", p.GPUMemoryGB)
	}
	fmt.Fprintf(tw, "Estimated Time (min)\t%g\n", p.EstimatedMinutes)
	fmt.Fprintf(tw, "Estimated Cost (USD)\t%s\n", types.FormatCost(p.EstimatedCostUSD))
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "DERIVATION")
	for _, step := range result.Trace {
		if o.LaTeX {
			fmt.Fprintln(w, step.TeX)
			continue
		}
		fmt.Fprintln(w, step.String())
	}

	if len(result.Hints) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HINTS")
	for _, hint := range result.Hints {
		paint := severityColor(hint.Severity)
		fmt.Fprintf(w, "%s %s\n", paint("[%s]", strings.ToUpper(string(hint.Severity))), hint.Message)
	}
}
