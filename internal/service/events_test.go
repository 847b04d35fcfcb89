package service_test

import (
	"context"
	"encoding/json"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
	"github.com/kubev2v/fracture-planner/internal/events"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("computation service events", Ordered, func() {
	var (
		s        store.Store
		w        *eventWriter
		producer *events.EventProducer
		srv      *service.ComputationService
	)

	BeforeAll(func() {
		s, _ = newTestStore()
		w = &eventWriter{}
		producer = events.NewEventProducer(w)
		srv = service.NewComputationService(s, solvers.NewEngine(), service.WithEventProducer(producer))
	})

	AfterAll(func() {
		Expect(producer.Close()).To(Succeed())
		s.Close()
	})

	It("publishes computed and deleted runs", func() {
		run, err := srv.Compute(context.TODO(), service.ComputeForm{
			Model:   estimation.ModelRadial,
			Input:   illustrativeInput(),
			Persist: true,
		})
		Expect(err).To(BeNil())
		Expect(srv.DeleteRun(context.TODO(), run.ID)).To(Succeed())

		Eventually(w.Len).Should(Equal(2))
		evs := w.Events()
		Expect(evs[0].Type()).To(Equal(events.RunComputedKind))
		Expect(evs[1].Type()).To(Equal(events.RunDeletedKind))

		var computed events.RunEvent
		Expect(json.Unmarshal(evs[0].Data(), &computed)).To(Succeed())
		Expect(computed.RunID).To(Equal(run.ID.String()))
		Expect(computed.Model).To(Equal("Radial"))
		Expect(computed.Persisted).To(BeTrue())

		var deleted events.RunEvent
		Expect(json.Unmarshal(evs[1].Data(), &deleted)).To(Succeed())
		Expect(deleted.RunID).To(Equal(run.ID.String()))
		Expect(deleted.Model).To(Equal("Radial"))
		Expect(deleted.Regime).To(Equal(run.Regime))
	})

	It("publishes nothing for a failed computation", func() {
		before := w.Len()
		in := illustrativeInput()
		in.PoissonRatio = 0.5

		_, err := srv.Compute(context.TODO(), service.ComputeForm{Model: estimation.ModelPKN, Input: in})
		Expect(err).NotTo(BeNil())
		Consistently(w.Len).Should(Equal(before))
	})
})

type eventWriter struct {
	mu     sync.Mutex
	events []cloudevents.Event
}

func (e *eventWriter) Write(_ context.Context, _ string, ev cloudevents.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

func (e *eventWriter) Close(_ context.Context) error { return nil }

func (e *eventWriter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

func (e *eventWriter) Events() []cloudevents.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]cloudevents.Event(nil), e.events...)
}
