package v1alpha1_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/api/server"
	handlers "github.com/kubev2v/training-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/internal/util"
	"github.com/kubev2v/training-planner/pkg/requestid"
)

var _ = Describe("estimation handler", func() {
	var (
		srv *handlers.ServiceHandler
		ctx context.Context
	)

	cloudRequest := func() *api.EstimationRequest {
		return &api.EstimationRequest{
			AssetCount: 100,
			ModelType:  "VAE",
			Lora:       true,
			Hardware:   util.ToPtr("p3.2xlarge"),
			Advanced:   true,
			Image:      &api.ImageGeometry{Width: 512, Height: 512, Channels: 3, PrecisionBits: 32},
		}
	}

	BeforeEach(func() {
		catalog := hardware.Default()
		srv = handlers.NewServiceHandler(service.NewEstimationService(catalog), service.NewHardwareService(catalog))
		ctx = requestid.ToContext(context.TODO(), "test-request")
	})

	Context("create estimation", func() {
		It("successfully estimates", func() {
			resp, err := srv.CreateEstimation(ctx, server.CreateEstimationRequestObject{Body: cloudRequest()})
			Expect(err).To(BeNil())

			result, ok := resp.(server.CreateEstimation200JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(result.Parameters.BatchSize).To(Equal(1))
			Expect(result.Parameters.Optimizer).To(Equal("adamw8bit"))
			Expect(*result.Parameters.LoraRank).To(Equal(32))
			Expect(*result.Parameters.EstimatedCostUsd).To(BeNumerically("~", 1.02, 1e-9))
			Expect(result.Trace).ToNot(BeEmpty())
			Expect(result.Trace[0].Tex).To(ContainSubstring(`\text{`))
		})

		It("fails with an empty body", func() {
			resp, err := srv.CreateEstimation(ctx, server.CreateEstimationRequestObject{})
			Expect(err).To(BeNil())

			badRequest, ok := resp.(server.CreateEstimation400JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(badRequest.Message).To(Equal("empty body"))
			Expect(*badRequest.RequestId).To(Equal("test-request"))
		})

		It("fails validation with an unknown hardware key", func() {
			body := cloudRequest()
			body.Hardware = util.ToPtr("tpu-v5")

			resp, err := srv.CreateEstimation(ctx, server.CreateEstimationRequestObject{Body: body})
			Expect(err).To(BeNil())

			badRequest, ok := resp.(server.CreateEstimation400JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(badRequest.Message).To(ContainSubstring("tpu-v5"))
		})

		It("ignores the image geometry outside advanced mode", func() {
			body := cloudRequest()
			body.Advanced = false
			body.Image = &api.ImageGeometry{Width: 0, Height: 512, Channels: 3, PrecisionBits: 8}

			resp, err := srv.CreateEstimation(ctx, server.CreateEstimationRequestObject{Body: body})
			Expect(err).To(BeNil())

			_, ok := resp.(server.CreateEstimation200JSONResponse)
			Expect(ok).To(BeTrue())
		})

		It("rejects a bad image geometry in advanced mode", func() {
			body := cloudRequest()
			body.Image.PrecisionBits = 8

			resp, err := srv.CreateEstimation(ctx, server.CreateEstimationRequestObject{Body: body})
			Expect(err).To(BeNil())

			badRequest, ok := resp.(server.CreateEstimation400JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(badRequest.Message).To(ContainSubstring("image.precisionBits"))
		})

		It("rejects a request without assets", func() {
			body := cloudRequest()
			body.AssetCount = 0

			resp, err := srv.CreateEstimation(ctx, server.CreateEstimationRequestObject{Body: body})
			Expect(err).To(BeNil())

			badRequest, ok := resp.(server.CreateEstimation400JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(badRequest.Message).To(ContainSubstring("asset count"))
		})
	})

	Context("get hardware", func() {
		It("returns a tier", func() {
			resp, err := srv.GetHardware(ctx, server.GetHardwareRequestObject{Key: "p3.2xlarge"})
			Expect(err).To(BeNil())

			tier, ok := resp.(server.GetHardware200JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(tier.Key).To(Equal("p3.2xlarge"))
			Expect(tier.CostPerHourUsd).To(BeNumerically("~", 3.06, 1e-9))
		})

		It("fails with an unknown key", func() {
			resp, err := srv.GetHardware(ctx, server.GetHardwareRequestObject{Key: "tpu-v5"})
			Expect(err).To(BeNil())

			notFound, ok := resp.(server.GetHardware404JSONResponse)
			Expect(ok).To(BeTrue())
			Expect(notFound.Message).To(ContainSubstring("tpu-v5"))
			Expect(*notFound.RequestId).To(Equal("test-request"))
		})
	})

	Context("create estimation report", func() {
		It("defaults to html", func() {
			resp, err := srv.CreateEstimationReport(ctx, server.CreateEstimationReportRequestObject{Body: cloudRequest()})
			Expect(err).To(BeNil())

			report, ok := resp.(server.CreateEstimationReport200Response)
			Expect(ok).To(BeTrue())
			Expect(report.ContentType).To(HavePrefix("text/html"))
			Expect(report.Filename).To(HaveSuffix(".html"))
		})

		It("renders csv", func() {
			format := api.ReportFormatCSV
			resp, err := srv.CreateEstimationReport(ctx, server.CreateEstimationReportRequestObject{
				Params: server.CreateEstimationReportParams{Format: &format},
				Body:   cloudRequest(),
			})
			Expect(err).To(BeNil())

			report, ok := resp.(server.CreateEstimationReport200Response)
			Expect(ok).To(BeTrue())
			content, err := io.ReadAll(report.Body)
			Expect(err).To(BeNil())
			Expect(string(content)).To(HavePrefix("TRAINING PLAN REPORT"))
			Expect(report.ContentLength).To(BeNumerically("==", len(content)))
		})

		It("fails with an unsupported format", func() {
			format := api.ReportFormat("pdf")
			resp, err := srv.CreateEstimationReport(ctx, server.CreateEstimationReportRequestObject{
				Params: server.CreateEstimationReportParams{Format: &format},
				Body:   cloudRequest(),
			})
			Expect(err).To(BeNil())

			_, ok := resp.(server.CreateEstimationReport400JSONResponse)
			Expect(ok).To(BeTrue())
		})
	})

	Context("http routing", func() {
		var handler http.Handler

		BeforeEach(func() {
			handler = server.HandlerFromMux(server.NewStrictHandler(srv, nil), chi.NewRouter())
		})

		It("serves an estimation", func() {
			body := `{"assetCount": 1000, "modelType": "DNN", "hardware": "p3.2xlarge"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimations", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var result api.EstimationResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Parameters.TotalSteps).To(BeNumerically(">", 0))
			Expect(result.Parameters.EstimatedCostUsd).ToNot(BeNil())
		})

		It("serves a report as an attachment", func() {
			body := `{"assetCount": 100, "modelType": "CNN"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimations/report?format=csv", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(".csv"))
		})

		It("rejects a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimations", strings.NewReader("{"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("lists hardware", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var tiers api.HardwareTierList
			Expect(json.Unmarshal(rec.Body.Bytes(), &tiers)).To(Succeed())
			Expect(tiers[0].Key).To(Equal("local"))
		})

		It("gets a hardware tier by key", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/g5.12xlarge", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var tier api.HardwareTier
			Expect(json.Unmarshal(rec.Body.Bytes(), &tier)).To(Succeed())
			Expect(tier.GpuMemoryGb).To(BeNumerically("==", 24))
		})

		It("returns 404 for an unknown hardware tier", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/tpu-v5", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
