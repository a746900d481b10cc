package unit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	checkoutservice "github.com/00kaito/DevBytes/contexts/commerce/checkout-service"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/adapters/memory"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
	httptransport "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/transport/http"
)

type stubCatalog map[string]ports.PodcastInfo

func (c stubCatalog) GetPodcast(_ context.Context, podcastID string) (ports.PodcastInfo, error) {
	podcast, exists := c[podcastID]
	if !exists {
		return ports.PodcastInfo{}, domainerrors.ErrPodcastNotFound
	}
	return podcast, nil
}

type stubUsers map[string]ports.UserInfo

func (u stubUsers) GetUser(_ context.Context, userID string) (ports.UserInfo, error) {
	user, exists := u[userID]
	if !exists {
		return ports.UserInfo{}, errors.New("unknown user")
	}
	return user, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.EventEnvelope
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) published() []ports.EventEnvelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.EventEnvelope(nil), p.events...)
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"pod-1": {
			PodcastID:    "pod-1",
			Title:        "Generics in Practice",
			Slug:         "generics-in-practice",
			PriceCents:   2900,
			CategoryName: "Go",
		},
	}
}

func TestCreatePaymentIntentReadsPriceFromCatalog(t *testing.T) {
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, nil, nil)

	resp, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if resp.AmountCents != 2900 {
		t.Fatalf("amount must come from the catalog, got %d", resp.AmountCents)
	}
	if resp.Currency != "pln" {
		t.Fatalf("default currency should be pln, got %q", resp.Currency)
	}
	if resp.ClientSecret == "" || resp.PaymentIntentID == "" {
		t.Fatalf("intent identifiers missing: %+v", resp)
	}
}

func TestCreatePaymentIntentUnknownPodcast(t *testing.T) {
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, nil, nil)

	_, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-missing",
	})
	if !errors.Is(err, domainerrors.ErrPodcastNotFound) {
		t.Fatalf("expected podcast not found, got %v", err)
	}
	if module.Gateway.CreateCalls() != 0 {
		t.Fatal("gateway must not be called for unknown podcasts")
	}
}

func TestDuplicatePurchaseGuardRunsBeforeGateway(t *testing.T) {
	now := time.Now().UTC()
	completedAt := now.Add(-time.Hour)
	module := checkoutservice.NewInMemoryModule([]entities.Purchase{
		{
			PurchaseID:      "purchase-1",
			UserID:          "user-1",
			PodcastID:       "pod-1",
			AmountCents:     2900,
			Currency:        "pln",
			PaymentIntentID: "pi_seeded",
			Status:          entities.PurchaseStatusCompleted,
			CreatedAt:       now.Add(-2 * time.Hour),
			CompletedAt:     &completedAt,
		},
	}, testCatalog(), stubUsers{}, nil, nil)

	_, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyPurchased) {
		t.Fatalf("expected already purchased, got %v", err)
	}
	if module.Gateway.CreateCalls() != 0 {
		t.Fatal("already-entitled user must never reach the processor")
	}
}

func TestConfirmPurchaseRequiresSettledIntent(t *testing.T) {
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, nil, nil)

	intent, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	_, err = module.Handler.ConfirmPurchaseHandler(context.Background(), "user-1", httptransport.ConfirmPurchaseRequest{
		PaymentIntentID: intent.PaymentIntentID,
	})
	if !errors.Is(err, domainerrors.ErrPaymentNotSettled) {
		t.Fatalf("unsettled intent must not complete, got %v", err)
	}

	module.Gateway.SetIntentStatus(intent.PaymentIntentID, ports.IntentStatusSucceeded)
	confirmed, err := module.Handler.ConfirmPurchaseHandler(context.Background(), "user-1", httptransport.ConfirmPurchaseRequest{
		PaymentIntentID: intent.PaymentIntentID,
	})
	if err != nil {
		t.Fatalf("confirm after settlement: %v", err)
	}
	if confirmed.Replayed {
		t.Fatal("first confirmation should not be a replay")
	}
	if confirmed.Purchase.Status != string(entities.PurchaseStatusCompleted) {
		t.Fatalf("purchase should be completed, got %q", confirmed.Purchase.Status)
	}

	replay, err := module.Handler.ConfirmPurchaseHandler(context.Background(), "user-1", httptransport.ConfirmPurchaseRequest{
		PaymentIntentID: intent.PaymentIntentID,
	})
	if err != nil {
		t.Fatalf("replayed confirmation should succeed: %v", err)
	}
	if !replay.Replayed {
		t.Fatal("second confirmation should replay")
	}
}

func TestConfirmPurchaseForeignIntentIsNotFound(t *testing.T) {
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, nil, nil)

	intent, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	module.Gateway.SetIntentStatus(intent.PaymentIntentID, ports.IntentStatusSucceeded)

	_, err = module.Handler.ConfirmPurchaseHandler(context.Background(), "user-other", httptransport.ConfirmPurchaseRequest{
		PaymentIntentID: intent.PaymentIntentID,
	})
	if !errors.Is(err, domainerrors.ErrPurchaseNotFound) {
		t.Fatalf("another user's intent must look nonexistent, got %v", err)
	}
}

func TestConcurrentConfirmSettlesExactlyOnce(t *testing.T) {
	publisher := &recordingPublisher{}
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, publisher, nil)

	intent, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	module.Gateway.SetIntentStatus(intent.PaymentIntentID, ports.IntentStatusSucceeded)

	const confirms = 8
	var wg sync.WaitGroup
	errs := make([]error, confirms)
	for i := 0; i < confirms; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = module.Handler.ConfirmPurchaseHandler(context.Background(), "user-1", httptransport.ConfirmPurchaseRequest{
				PaymentIntentID: intent.PaymentIntentID,
			})
		}(i)
	}
	wg.Wait()

	for slot, err := range errs {
		if err != nil {
			t.Fatalf("confirm %d should succeed or replay, got %v", slot, err)
		}
	}

	completed, err := module.Purchases.ListCompletedByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("exactly one completed purchase expected, got %d", len(completed))
	}

	// Losing confirms replay the winner's outcome; they must not enqueue a
	// second completion event.
	if err := module.Relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay: %v", err)
	}
	if got := len(publisher.published()); got != 1 {
		t.Fatalf("exactly one completion event expected, got %d", got)
	}
}

func TestSettlementReconcilerCompletesAbandonedPurchase(t *testing.T) {
	store := memory.NewStore(nil)
	gateway := memory.NewGateway()
	module := checkoutservice.NewModule(checkoutservice.Dependencies{
		Purchases:        store,
		Outbox:           store,
		Catalog:          testCatalog(),
		Users:            stubUsers{},
		Gateway:          gateway,
		Clock:            store,
		IDGenerator:      store,
		PendingOlderThan: time.Nanosecond,
	})

	intent, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	// Client disconnected before confirming; the intent later settled at the
	// processor.
	gateway.SetIntentStatus(intent.PaymentIntentID, ports.IntentStatusSucceeded)

	time.Sleep(time.Millisecond)
	if err := module.Reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconciler: %v", err)
	}

	completed, err := store.ListCompletedByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("reconciler should settle the abandoned purchase, got %d completed", len(completed))
	}
}

func TestReconcilerSkipsUnsettledIntent(t *testing.T) {
	store := memory.NewStore(nil)
	gateway := memory.NewGateway()
	module := checkoutservice.NewModule(checkoutservice.Dependencies{
		Purchases:        store,
		Outbox:           store,
		Catalog:          testCatalog(),
		Users:            stubUsers{},
		Gateway:          gateway,
		Clock:            store,
		IDGenerator:      store,
		PendingOlderThan: time.Nanosecond,
	})

	if _, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	}); err != nil {
		t.Fatalf("create intent: %v", err)
	}

	time.Sleep(time.Millisecond)
	if err := module.Reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconciler must tolerate unpaid intents: %v", err)
	}

	completed, err := store.ListCompletedByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 0 {
		t.Fatal("unpaid intent must stay pending")
	}
}

func TestOutboxRelayPublishesPurchaseCompleted(t *testing.T) {
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
		t.Fatalf("expected one published event, got %d", len(events))
	}
	if events[0].EventType != "purchase.completed" {
		t.Fatalf("unexpected event type %q", events[0].EventType)
	}

	// Published rows are not relayed twice.
	if err := module.Relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay cycle: %v", err)
	}
	if got := len(publisher.published()); got != 1 {
		t.Fatalf("relay should not republish, got %d events", got)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, ports.EventEnvelope) error {
	return errors.New("subscriber buffer full")
}

func TestOutboxRelayKeepsRowPendingWhenPublishFails(t *testing.T) {
	store := memory.NewStore(nil)
	gateway := memory.NewGateway()
	module := checkoutservice.NewModule(checkoutservice.Dependencies{
		Purchases:   store,
		Outbox:      store,
		Catalog:     testCatalog(),
		Users:       stubUsers{},
		Gateway:     gateway,
		Publisher:   failingPublisher{},
		Clock:       store,
		IDGenerator: store,
	})

	intent, err := module.Handler.CreatePaymentIntentHandler(context.Background(), "user-1", httptransport.CreatePaymentIntentRequest{
		PodcastID: "pod-1",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	gateway.SetIntentStatus(intent.PaymentIntentID, ports.IntentStatusSucceeded)
	if _, err := module.Handler.ConfirmPurchaseHandler(context.Background(), "user-1", httptransport.ConfirmPurchaseRequest{
		PaymentIntentID: intent.PaymentIntentID,
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := module.Relay.RunOnce(context.Background()); err == nil {
		t.Fatal("a failed publish must fail the relay cycle")
	}

	// The row stays pending so the next cycle retries it.
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("undelivered event must stay in the outbox, got %d pending", len(pending))
	}
}

func TestListPurchasesEnrichesWithCatalogData(t *testing.T) {
	module := checkoutservice.NewInMemoryModule(nil, testCatalog(), stubUsers{}, nil, nil)

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

	list, err := module.Handler.ListPurchasesHandler(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("expected one purchase, got %d", len(list.Items))
	}
	item := list.Items[0]
	if item.PodcastTitle != "Generics in Practice" || item.CategoryName != "Go" {
		t.Fatalf("listing should be enriched from the catalog, got %+v", item)
	}
	if item.PurchasedAt == nil {
		t.Fatal("completed purchases carry a settlement timestamp")
	}
}
