package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/00kaito/DevBytes/internal/shared/events"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	if err := bus.Subscribe(ctx, "purchase.completed", "receipts", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(context.Background(), "purchase.completed", events.Envelope{EventID: "evt-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-received:
		if event.EventID != "evt-1" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}
}

func TestPublishFailsWhenSubscriberBufferIsFull(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	block := make(chan struct{})
	defer close(block)
	if err := bus.Subscribe(ctx, "purchase.completed", "stalled", func(context.Context, events.Envelope) error {
		<-block
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// A stalled consumer can absorb at most the channel buffer plus one
	// in-flight event, so publishing past that bound must fail instead of
	// silently dropping.
	var overflow error
	for i := 0; i < 130; i++ {
		if err := bus.Publish(context.Background(), "purchase.completed", events.Envelope{EventID: fmt.Sprintf("evt-%d", i)}); err != nil {
			overflow = err
			break
		}
	}
	if overflow == nil {
		t.Fatal("publish against a stalled subscriber should eventually fail")
	}
	if !errors.Is(overflow, ErrSubscriberOverflow) {
		t.Fatalf("expected subscriber overflow, got %v", overflow)
	}
}
