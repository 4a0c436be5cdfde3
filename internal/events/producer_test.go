package events

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes succsessfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)

			err := kp.Write(context.TODO(), EstimationMessageKind, bytes.NewReader([]byte(`{"n":1}`)))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(1))
			Expect(w.Event(0).Context.GetType()).To(Equal(EstimationMessageKind))
			Expect(w.Event(0).Source()).To(Equal("training.planner"))

			err = kp.Write(context.TODO(), ReportMessageKind, bytes.NewReader([]byte(`{"n":2}`)))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(2))

			Expect(kp.Close()).To(Succeed())
			Expect(w.closed).To(BeTrue())
		})

		It("flushes pending events on close", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("audit"), WithSource("test"))

			for i := 0; i < 10; i++ {
				Expect(kp.WriteEvent(context.TODO(), ReportMessageKind, ReportEvent{Format: "csv", SizeBytes: i})).To(Succeed())
			}
			Expect(kp.Close()).To(Succeed())

			Expect(w.Len()).To(Equal(10))
			Expect(w.topics[0]).To(Equal("audit"))
			Expect(w.Event(0).Source()).To(Equal("test"))

			var last ReportEvent
			Expect(json.Unmarshal(w.Event(9).Data(), &last)).To(Succeed())
			Expect(last.SizeBytes).To(Equal(9))
		})

		It("can be closed twice", func() {
			kp := NewEventProducer(newTestWriter())
			Expect(kp.Close()).To(Succeed())
			Expect(kp.Close()).To(Succeed())
		})
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
	topics   []string
	closed   bool
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.messages = append(t.messages, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	t.closed = true
	return nil
}

func (t *testwriter) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.messages)
}

func (t *testwriter) Event(i int) cloudevents.Event {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.messages[i]
}
