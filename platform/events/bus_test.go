package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"homeloans_backend/platform/logger"
)

type pingEvent struct{ BaseEvent }

func (pingEvent) EventName() string { return "ping" }

type handlerFunc func(ctx context.Context, e Event) error

func (f handlerFunc) Handle(ctx context.Context, e Event) error { return f(ctx, e) }

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32
	for range 3 {
		bus.Subscribe("ping", handlerFunc(func(ctx context.Context, e Event) error {
			calls.Add(1)
			return nil
		}))
	}
	bus.Subscribe("other", handlerFunc(func(ctx context.Context, e Event) error {
		t.Error("unexpected delivery to other subscriber")
		return nil
	}))

	bus.Publish(context.Background(), pingEvent{NewBaseEvent()})
	bus.Wait()

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 deliveries, got %d", got)
	}
}

func TestPublishSurvivesCancelledRequestContext(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var ctxErr atomic.Value
	bus.Subscribe("ping", handlerFunc(func(ctx context.Context, e Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{NewBaseEvent()})
	bus.Wait()

	if ok, _ := ctxErr.Load().(bool); !ok {
		t.Fatal("expected handler context to be detached from cancellation")
	}
}

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	errA := errors.New("a")
	bus.Subscribe("ping", handlerFunc(func(ctx context.Context, e Event) error { return errA }))
	bus.Subscribe("ping", handlerFunc(func(ctx context.Context, e Event) error { return nil }))

	err := bus.PublishSync(context.Background(), pingEvent{NewBaseEvent()})
	if !errors.Is(err, errA) {
		t.Fatalf("expected joined error to contain a, got %v", err)
	}
}
