package entities

import "time"

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
)

// Purchase tracks one settlement attempt. A pending row is written when the
// payment intent is created and doubles as the reconciliation anchor; it
// becomes completed only after the processor confirms the intent succeeded.
// At most one completed purchase exists per (user, podcast).
type Purchase struct {
	PurchaseID      string
	UserID          string
	PodcastID       string
	AmountCents     int64
	Currency        string
	PaymentIntentID string
	Status          PurchaseStatus
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

func (p Purchase) Completed() bool {
	return p.Status == PurchaseStatusCompleted
}
