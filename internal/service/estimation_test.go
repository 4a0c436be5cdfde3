package service_test

import (
	"bytes"
	"context"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/estimation/calculators"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/internal/service/report/types"
)

var _ = Describe("estimation service", Ordered, func() {
	var (
		srv *service.EstimationService
		ctx context.Context
	)

	cloudRequest := func() estimation.TrainingRequest {
		return estimation.TrainingRequest{
			AssetCount: 100,
			ModelType:  estimation.ModelTypeVAE,
			LoRA:       true,
			Hardware:   "p3.2xlarge",
			Advanced:   true,
			Image:      &estimation.ImageGeometry{Width: 512, Height: 512, Channels: 3, PrecisionBits: 32},
		}
	}

	BeforeEach(func() {
		srv = service.NewEstimationService(hardware.Default())
		ctx = context.TODO()
	})

	Context("estimate", func() {
		It("successfully estimates a cloud LoRA run", func() {
			result, err := srv.Estimate(ctx, cloudRequest())
			Expect(err).To(BeNil())
			Expect(result.Parameters.BatchSize).To(Equal(1))
			Expect(result.Parameters.StepsPerEpoch).To(Equal(100))
			Expect(result.Parameters.Optimizer).To(Equal(estimation.OptimizerAdamW8bit))
			Expect(result.Parameters.EstimatedMinutes).To(BeNumerically("==", 20))
			Expect(result.Parameters.EstimatedCostUSD).ToNot(BeNil())
			Expect(*result.Parameters.EstimatedCostUSD).To(BeNumerically("~", 1.02, 1e-9))
			Expect(result.Trace).ToNot(BeEmpty())
		})

		It("defaults to local hardware without a cost", func() {
			req := cloudRequest()
			req.Hardware = ""

			result, err := srv.Estimate(ctx, req)
			Expect(err).To(BeNil())
			Expect(result.Parameters.EstimatedCostUSD).To(BeNil())
			Expect(result.Parameters.EstimatedMinutes).To(BeNumerically(">", 0))
		})

		It("rejects a request without assets", func() {
			req := cloudRequest()
			req.AssetCount = 0

			_, err := srv.Estimate(ctx, req)
			Expect(err).ToNot(BeNil())
			_, ok := err.(*service.ErrInvalidEstimation)
			Expect(ok).To(BeTrue())
		})

		It("rejects an unknown hardware key", func() {
			req := cloudRequest()
			req.Hardware = "tpu-v5"

			_, err := srv.Estimate(ctx, req)
			Expect(err).ToNot(BeNil())
			_, ok := err.(*service.ErrInvalidEstimation)
			Expect(ok).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("tpu-v5"))
		})

		It("rejects a schedule whose step count overflows", func() {
			req := cloudRequest()
			req.LoRA = false
			req.ModelType = estimation.ModelTypeDNN
			req.Epochs = math.MaxInt / 2

			_, err := srv.Estimate(ctx, req)
			Expect(err).ToNot(BeNil())
			_, ok := err.(*service.ErrInvalidEstimation)
			Expect(ok).To(BeTrue())
		})

		It("honors engine options", func() {
			srv = service.NewEstimationService(hardware.Default(),
				calculators.WithOptimizerOptions(calculators.WithDefaultOptimizer(estimation.OptimizerLion)))

			req := cloudRequest()
			req.LoRA = false
			req.ModelType = estimation.ModelTypeDNN
			req.Advanced = false
			req.Image = nil

			result, err := srv.Estimate(ctx, req)
			Expect(err).To(BeNil())
			Expect(result.Parameters.Optimizer).To(Equal(estimation.OptimizerLion))
		})
	})

	Context("report", func() {
		It("renders a csv report", func() {
			rendered, err := srv.Report(ctx, cloudRequest(), types.ReportFormatCSV)
			Expect(err).To(BeNil())
			Expect(rendered.ContentType).To(HavePrefix("text/csv"))
			Expect(rendered.Filename).To(HaveSuffix(".csv"))
			Expect(strings.HasPrefix(string(rendered.Content), "TRAINING PLAN REPORT")).To(BeTrue())
		})

		It("renders an xlsx report", func() {
			rendered, err := srv.Report(ctx, cloudRequest(), types.ReportFormatXLSX)
			Expect(err).To(BeNil())
			Expect(rendered.Filename).To(HaveSuffix(".xlsx"))

			f, err := excelize.OpenReader(bytes.NewReader(rendered.Content))
			Expect(err).To(BeNil())
			defer f.Close()
			Expect(f.GetSheetList()).To(ContainElement("Summary"))
		})

		It("renders an existing result", func() {
			req := cloudRequest()
			result, err := srv.Estimate(ctx, req)
			Expect(err).To(BeNil())

			rendered, err := srv.RenderReport(ctx, req, result, types.ReportFormatHTML)
			Expect(err).To(BeNil())
			Expect(rendered.Format).To(Equal(types.ReportFormatHTML))
			Expect(rendered.Filename).To(HaveSuffix(".html"))
			Expect(string(rendered.Content)).To(ContainSubstring("adamw8bit"))
		})

		It("fails with an unsupported format", func() {
			_, err := srv.Report(ctx, cloudRequest(), "pdf")
			Expect(err).ToNot(BeNil())
			_, ok := err.(*service.ErrUnsupportedReportFormat)
			Expect(ok).To(BeTrue())
		})

		It("fails when the estimation is rejected", func() {
			req := cloudRequest()
			req.AssetCount = -1

			_, err := srv.Report(ctx, req, types.ReportFormatHTML)
			Expect(err).ToNot(BeNil())
			_, ok := err.(*service.ErrInvalidEstimation)
			Expect(ok).To(BeTrue())
		})
	})
})
