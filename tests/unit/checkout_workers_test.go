package unit

import (
	"context"
	"sync"
	"testing"

	checkoutservice "github.com/00kaito/DevBytes/contexts/commerce/checkout-service"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/workers"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
	httptransport "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/transport/http"
)

type recordingMailer struct {
	mu       sync.Mutex
	receipts []ports.ReceiptEmail
	fail     bool
}

func (m *recordingMailer) SendReceipt(_ context.Context, msg ports.ReceiptEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return context.DeadlineExceeded
	}
	m.receipts = append(m.receipts, msg)
	return nil
}

func settledPurchaseEvent(t *testing.T) ports.EventEnvelope {
	t.Helper()

	publisher := &recordingPublisher{}
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, publisher, nil)

	intent, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	module.Gateway.SetIntentStatus(intent.PaymentIntentID, ports.IntentStatusSucceeded)
	if _, err := module.Handler.ConfirmPurchaseHandler(context.Background(), "user-1", httptransport.ConfirmPurchaseRequest{
		PaymentIntentID: intent.PaymentIntentID,
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := module.Relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay: %v", err)
	}

	events := publisher.published()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	return events[0]
}

func TestReceiptConsumerSendsReceipt(t *testing.T) {
	event := settledPurchaseEvent(t)

	mailer := &recordingMailer{}
	consumer := workers.ReceiptConsumer{
		Users:   stubUsers{"user-1": {UserID: "user-1", Email: "anna@example.com", FirstName: "Anna"}},
		Catalog: testCatalog(),
		Mailer:  mailer,
	}

	if err := consumer.Handle(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.receipts) != 1 {
		t.Fatalf("expected one receipt, got %d", len(mailer.receipts))
	}
	receipt := mailer.receipts[0]
	if receipt.To != "anna@example.com" || receipt.PodcastTitle != "Generics in Practice" {
		t.Fatalf("receipt should carry user and podcast details, got %+v", receipt)
	}
	if receipt.AmountCents != 2900 || receipt.Currency != "pln" {
		t.Fatalf("receipt amount mismatch: %+v", receipt)
	}
}

func TestReceiptConsumerTreatsMailFailureAsBestEffort(t *testing.T) {
	event := settledPurchaseEvent(t)

	consumer := workers.ReceiptConsumer{
		Users:   stubUsers{"user-1": {UserID: "user-1", Email: "anna@example.com", FirstName: "Anna"}},
		Catalog: testCatalog(),
		Mailer:  &recordingMailer{fail: true},
	}

	if err := consumer.Handle(context.Background(), event); err != nil {
		t.Fatalf("mail failure must not fail the consumer: %v", err)
	}
}
