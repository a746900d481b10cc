package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu sync.Mutex

	purchases map[string]entities.Purchase
	byIntent  map[string]string
	outbox    []*outboxRow
}

func NewStore(seed []entities.Purchase) *Store {
	purchases := make(map[string]entities.Purchase, len(seed))
	byIntent := make(map[string]string, len(seed))
	for _, item := range seed {
		purchases[item.PurchaseID] = item
		if item.PaymentIntentID != "" {
			byIntent[item.PaymentIntentID] = item.PurchaseID
		}
	}
	return &Store{
		purchases: purchases,
		byIntent:  byIntent,
	}
}

func (s *Store) CreatePending(_ context.Context, purchase entities.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.purchases[purchase.PurchaseID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	if _, exists := s.byIntent[purchase.PaymentIntentID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.purchases[purchase.PurchaseID] = purchase
	s.byIntent[purchase.PaymentIntentID] = purchase.PurchaseID
	return nil
}

func (s *Store) GetByIntentID(_ context.Context, intentID string) (entities.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchaseID, exists := s.byIntent[strings.TrimSpace(intentID)]
	if !exists {
		return entities.Purchase{}, domainerrors.ErrPurchaseNotFound
	}
	return s.purchases[purchaseID], nil
}

func (s *Store) GetCompleted(_ context.Context, userID string, podcastID string) (entities.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.purchases {
		if item.UserID == userID && item.PodcastID == podcastID && item.Completed() {
			return item, nil
		}
	}
	return entities.Purchase{}, domainerrors.ErrPurchaseNotFound
}

func (s *Store) HasCompletedPurchase(_ context.Context, userID string, podcastID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.purchases {
		if item.UserID == userID && item.PodcastID == podcastID && item.Completed() {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) MarkCompletedWithOutbox(_ context.Context, purchaseID string, amountCents int64, completedAt time.Time, envelope ports.EventEnvelope) (entities.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchase, exists := s.purchases[strings.TrimSpace(purchaseID)]
	if !exists {
		return entities.Purchase{}, domainerrors.ErrPurchaseNotFound
	}
	for _, item := range s.purchases {
		if item.PurchaseID != purchase.PurchaseID &&
			item.UserID == purchase.UserID &&
			item.PodcastID == purchase.PodcastID &&
			item.Completed() {
			return entities.Purchase{}, domainerrors.ErrAlreadyPurchased
		}
	}
	if purchase.Completed() {
		return purchase, nil
	}

	at := completedAt.UTC()
	purchase.Status = entities.PurchaseStatusCompleted
	purchase.AmountCents = amountCents
	purchase.CompletedAt = &at
	s.purchases[purchase.PurchaseID] = purchase

	payload, err := json.Marshal(envelope)
	if err != nil {
		return entities.Purchase{}, err
	}
	s.outbox = append(s.outbox, &outboxRow{
		message: ports.OutboxMessage{
			OutboxID:     uuid.NewString(),
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    at,
		},
	})
	return purchase, nil
}

func (s *Store) ListCompletedByUser(_ context.Context, userID string) ([]entities.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Purchase, 0)
	for _, item := range s.purchases {
		if item.UserID == strings.TrimSpace(userID) && item.Completed() {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListStalePending(_ context.Context, olderThan time.Time, limit int) ([]entities.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Purchase, 0)
	for _, item := range s.purchases {
		if item.Status == entities.PurchaseStatusPending && item.CreatedAt.Before(olderThan.UTC()) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.outbox {
		if row.message.OutboxID == outboxID {
			row.published = true
			return nil
		}
	}
	return domainerrors.ErrPurchaseNotFound
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
