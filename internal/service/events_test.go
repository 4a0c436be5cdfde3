package service_test

import (
	"context"
	"encoding/json"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/events"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/internal/service/report/types"
	"github.com/kubev2v/training-planner/pkg/requestid"
)

var _ = Describe("estimation events", func() {
	It("publishes estimation and report events", func() {
		w := &recordingWriter{}
		producer := events.NewEventProducer(w)
		srv := service.NewEstimationService(hardware.Default()).WithEventProducer(producer)
		ctx := requestid.ToContext(context.TODO(), "req-1")

		req := estimation.TrainingRequest{AssetCount: 1000, ModelType: estimation.ModelTypeDNN, Hardware: "p3.2xlarge"}
		_, err := srv.Report(ctx, req, types.ReportFormatCSV)
		Expect(err).To(BeNil())
		Expect(producer.Close()).To(Succeed())

		Expect(w.events).To(HaveLen(2))
		Expect(w.events[0].Type()).To(Equal(events.EstimationMessageKind))
		Expect(w.events[1].Type()).To(Equal(events.ReportMessageKind))

		var published events.EstimationEvent
		Expect(json.Unmarshal(w.events[0].Data(), &published)).To(Succeed())
		Expect(published.RequestID).To(Equal("req-1"))
		Expect(published.Hardware).To(Equal("p3.2xlarge"))
		Expect(published.EstimatedCostUSD).ToNot(BeNil())
	})

	It("publishes one estimation event when rendering an existing result", func() {
		w := &recordingWriter{}
		producer := events.NewEventProducer(w)
		srv := service.NewEstimationService(hardware.Default()).WithEventProducer(producer)
		ctx := context.TODO()

		req := estimation.TrainingRequest{AssetCount: 100, ModelType: estimation.ModelTypeVAE}
		result, err := srv.Estimate(ctx, req)
		Expect(err).To(BeNil())
		_, err = srv.RenderReport(ctx, req, result, types.ReportFormatHTML)
		Expect(err).To(BeNil())
		Expect(producer.Close()).To(Succeed())

		Expect(w.events).To(HaveLen(2))
		Expect(w.events[0].Type()).To(Equal(events.EstimationMessageKind))
		Expect(w.events[1].Type()).To(Equal(events.ReportMessageKind))
	})

	It("publishes nothing for rejected requests", func() {
		w := &recordingWriter{}
		producer := events.NewEventProducer(w)
		srv := service.NewEstimationService(hardware.Default()).WithEventProducer(producer)

		_, err := srv.Estimate(context.TODO(), estimation.TrainingRequest{ModelType: estimation.ModelTypeDNN})
		Expect(err).ToNot(BeNil())
		Expect(producer.Close()).To(Succeed())
		Expect(w.events).To(BeEmpty())
	})
})

type recordingWriter struct {
	lock   sync.Mutex
	events []cloudevents.Event
}

func (r *recordingWriter) Write(_ context.Context, _ string, e cloudevents.Event) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingWriter) Close(_ context.Context) error { return nil }
