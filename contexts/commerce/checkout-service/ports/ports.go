package ports

import (
	"context"
	"time"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	"github.com/00kaito/DevBytes/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

// IntentStatusSucceeded is the only processor status that settles a purchase.
const IntentStatusSucceeded = "succeeded"

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
}

type CreateIntentRequest struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (Intent, error)
}

type PodcastInfo struct {
	PodcastID    string
	Title        string
	Slug         string
	PriceCents   int64
	CategoryName string
}

// CatalogReader re-reads podcast pricing from the catalog. The client never
// supplies an amount.
type CatalogReader interface {
	GetPodcast(ctx context.Context, podcastID string) (PodcastInfo, error)
}

type UserInfo struct {
	UserID    string
	Email     string
	FirstName string
}

type UserReader interface {
	GetUser(ctx context.Context, userID string) (UserInfo, error)
}

type ReceiptEmail struct {
	To           string
	FirstName    string
	PodcastTitle string
	AmountCents  int64
	Currency     string
}

type Mailer interface {
	SendReceipt(ctx context.Context, msg ReceiptEmail) error
}

type PurchaseRepository interface {
	CreatePending(ctx context.Context, purchase entities.Purchase) error
	GetByIntentID(ctx context.Context, intentID string) (entities.Purchase, error)
	GetCompleted(ctx context.Context, userID string, podcastID string) (entities.Purchase, error)
	// HasCompletedPurchase is the shared entitlement predicate: exactly this
	// method decides purchase-derived access everywhere.
	HasCompletedPurchase(ctx context.Context, userID string, podcastID string) (bool, error)
	// MarkCompletedWithOutbox settles the row and appends the outbox event in
	// one transaction. A second completed purchase for the same (user,
	// podcast) fails with ErrAlreadyPurchased from the storage constraint.
	MarkCompletedWithOutbox(ctx context.Context, purchaseID string, amountCents int64, completedAt time.Time, envelope EventEnvelope) (entities.Purchase, error)
	ListCompletedByUser(ctx context.Context, userID string) ([]entities.Purchase, error)
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]entities.Purchase, error)
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
