package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var calls []string
	dispatcher.Subscribe(EventTramiteCreated, func(_ context.Context, _ Event) error {
		calls = append(calls, "failing")
		return errors.New("handler rejected event")
	})
	dispatcher.Subscribe(EventTramiteCreated, func(_ context.Context, _ Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "e-1", Type: EventTramiteCreated})
	if err != nil {
		t.Fatalf("Publish should not surface handler errors, got %v", err)
	}
	if len(calls) != 2 || calls[1] != "second" {
		t.Errorf("Expected both handlers invoked in order, got %v", calls)
	}
}

func TestPublishWithoutSubscribersIsNoOp(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	if err := dispatcher.Publish(context.Background(), Event{Type: EventSessionEnded}); err != nil {
		t.Errorf("Expected no-op publish, got %v", err)
	}
}
