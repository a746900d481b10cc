package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreatePending(ctx context.Context, purchase entities.Purchase) error {
	row := purchaseModelFromEntity(purchase)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetByIntentID(ctx context.Context, intentID string) (entities.Purchase, error) {
	var row purchaseModel
	err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", strings.TrimSpace(intentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Purchase{}, domainerrors.ErrPurchaseNotFound
		}
		return entities.Purchase{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCompleted(ctx context.Context, userID string, podcastID string) (entities.Purchase, error) {
	var row purchaseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND podcast_id = ? AND status = ?", strings.TrimSpace(userID), strings.TrimSpace(podcastID), string(entities.PurchaseStatusCompleted)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Purchase{}, domainerrors.ErrPurchaseNotFound
		}
		return entities.Purchase{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) HasCompletedPurchase(ctx context.Context, userID string, podcastID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&purchaseModel{}).
		Where("user_id = ? AND podcast_id = ? AND status = ?", strings.TrimSpace(userID), strings.TrimSpace(podcastID), string(entities.PurchaseStatusCompleted)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) MarkCompletedWithOutbox(ctx context.Context, purchaseID string, amountCents int64, completedAt time.Time, envelope ports.EventEnvelope) (entities.Purchase, error) {
	var completed entities.Purchase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row purchaseModel
		if err := tx.Where("purchase_id = ?", strings.TrimSpace(purchaseID)).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrPurchaseNotFound
			}
			return err
		}
		if row.Status == string(entities.PurchaseStatusCompleted) {
			completed = row.toEntity()
			return nil
		}

		at := completedAt.UTC()
		result := tx.Model(&purchaseModel{}).
			Where("purchase_id = ? AND status = ?", row.PurchaseID, string(entities.PurchaseStatusPending)).
			Updates(map[string]any{
				"status":       string(entities.PurchaseStatusCompleted),
				"amount_cents": amountCents,
				"completed_at": at,
			})
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return domainerrors.ErrAlreadyPurchased
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent confirm (or the reconciler) completed this row
			// between our read and the update. Replay its outcome; the
			// outbox event was already written by the winner.
			if err := tx.Where("purchase_id = ?", row.PurchaseID).First(&row).Error; err != nil {
				return err
			}
			completed = row.toEntity()
			return nil
		}

		payload, err := json.Marshal(envelope)
		if err != nil {
			return err
		}
		outbox := outboxModel{
			OutboxID:     uuid.NewString(),
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    at,
		}
		if err := tx.Create(&outbox).Error; err != nil {
			return err
		}

		row.Status = string(entities.PurchaseStatusCompleted)
		row.AmountCents = amountCents
		row.CompletedAt = &at
		completed = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Purchase{}, err
	}
	return completed, nil
}

func (r *Repository) ListCompletedByUser(ctx context.Context, userID string) ([]entities.Purchase, error) {
	var rows []purchaseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", strings.TrimSpace(userID), string(entities.PurchaseStatusCompleted)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Purchase, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]entities.Purchase, error) {
	var rows []purchaseModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entities.PurchaseStatusPending), olderThan.UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Purchase, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ? AND status = ?", strings.TrimSpace(outboxID), outboxStatusPending).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

type purchaseModel struct {
	PurchaseID      string     `gorm:"column:purchase_id;primaryKey"`
	UserID          string     `gorm:"column:user_id;index:idx_completed_purchase,unique,where:status = 'completed'"`
	PodcastID       string     `gorm:"column:podcast_id;index:idx_completed_purchase,unique,where:status = 'completed'"`
	AmountCents     int64      `gorm:"column:amount_cents"`
	Currency        string     `gorm:"column:currency"`
	PaymentIntentID string     `gorm:"column:payment_intent_id;uniqueIndex"`
	Status          string     `gorm:"column:status;index"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
}

func (purchaseModel) TableName() string {
	return "checkout_purchases"
}

func (m purchaseModel) toEntity() entities.Purchase {
	return entities.Purchase{
		PurchaseID:      m.PurchaseID,
		UserID:          m.UserID,
		PodcastID:       m.PodcastID,
		AmountCents:     m.AmountCents,
		Currency:        m.Currency,
		PaymentIntentID: m.PaymentIntentID,
		Status:          entities.PurchaseStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		CompletedAt:     m.CompletedAt,
	}
}

func purchaseModelFromEntity(purchase entities.Purchase) purchaseModel {
	return purchaseModel{
		PurchaseID:      purchase.PurchaseID,
		UserID:          purchase.UserID,
		PodcastID:       purchase.PodcastID,
		AmountCents:     purchase.AmountCents,
		Currency:        purchase.Currency,
		PaymentIntentID: purchase.PaymentIntentID,
		Status:          string(purchase.Status),
		CreatedAt:       purchase.CreatedAt.UTC(),
		CompletedAt:     purchase.CompletedAt,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "checkout_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
