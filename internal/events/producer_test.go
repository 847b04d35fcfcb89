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

var _ = Describe("producer", func() {
	It("sends every queued event in order", func() {
		w := newTestWriter()
		ep := NewEventProducer(w, WithOutputTopic("runs"), WithSource("test"))

		Expect(ep.Write(context.TODO(), RunComputedKind, bytes.NewReader([]byte(`{"n":1}`)))).To(Succeed())
		Expect(ep.Write(context.TODO(), RunDeletedKind, bytes.NewReader([]byte(`{"n":2}`)))).To(Succeed())

		Eventually(w.Len).Should(Equal(2))
		msgs := w.Events()
		Expect(msgs[0].Type()).To(Equal(RunComputedKind))
		Expect(msgs[0].Source()).To(Equal("test"))
		Expect(msgs[1].Type()).To(Equal(RunDeletedKind))
		Expect(w.Topics()).To(ConsistOf("runs", "runs"))

		Expect(ep.Close()).To(Succeed())
		Expect(w.Closed()).To(BeTrue())
	})

	It("publishes JSON payloads", func() {
		w := newTestWriter()
		ep := NewEventProducer(w)

		Expect(ep.Publish(context.TODO(), RunComputedKind, RunEvent{RunID: "abc", Model: "PKN", Warnings: 2})).To(Succeed())
		Expect(ep.Close()).To(Succeed())

		Expect(w.Len()).To(Equal(1))
		var got RunEvent
		Expect(json.Unmarshal(w.Events()[0].Data(), &got)).To(Succeed())
		Expect(got.RunID).To(Equal("abc"))
		Expect(got.Warnings).To(Equal(2))
	})

	It("refuses events after close", func() {
		ep := NewEventProducer(newTestWriter())
		Expect(ep.Close()).To(Succeed())

		err := ep.Write(context.TODO(), RunComputedKind, bytes.NewReader(nil))
		Expect(err).To(MatchError(ErrProducerClosed))
	})
})

type testwriter struct {
	mu     sync.Mutex
	events []cloudevents.Event
	topics []string
	closed bool
}

func newTestWriter() *testwriter {
	return &testwriter{}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *testwriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

func (t *testwriter) Events() []cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]cloudevents.Event(nil), t.events...)
}

func (t *testwriter) Topics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.topics...)
}

func (t *testwriter) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
