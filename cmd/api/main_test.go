package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"homeloans_backend/internal/events"
	"homeloans_backend/platform/logger"
)

type orderLog struct {
	mu    sync.Mutex
	steps []string
}

func (o *orderLog) add(step string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, step)
}

type slowAlertHandler struct {
	log *orderLog
}

func (h slowAlertHandler) Handle(ctx context.Context, event events.Event) error {
	time.Sleep(20 * time.Millisecond)
	h.log.add("enqueued")
	return nil
}

func TestEventBusShutdownDrainsBeforeClosingQueue(t *testing.T) {
	order := &orderLog{}
	bus, shutdown := newEventBus(logger.Discard(), func() { order.add("queue closed") }, nil)
	bus.Subscribe(events.LeadQualified{}.EventName(), slowAlertHandler{log: order})

	bus.Publish(context.Background(), events.LeadQualified{BaseEvent: events.NewBaseEvent(), LeadScore: "hot"})
	shutdown()

	if len(order.steps) != 2 || order.steps[0] != "enqueued" || order.steps[1] != "queue closed" {
		t.Fatalf("expected handler to finish before queue close, got %v", order.steps)
	}
}
