package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

// ReceiptConsumer sends the purchase receipt email for each
// purchase.completed event. Mail delivery is best-effort; a failure is logged
// and the purchase stays settled.
type ReceiptConsumer struct {
	Users   ports.UserReader
	Catalog ports.CatalogReader
	Mailer  ports.Mailer
	Logger  *slog.Logger
}

type purchaseCompletedPayload struct {
	PurchaseID  string `json:"purchase_id"`
	UserID      string `json:"user_id"`
	PodcastID   string `json:"podcast_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

func (c ReceiptConsumer) Handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	if c.Mailer == nil {
		return nil
	}

	var payload purchaseCompletedPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return err
	}
	if payload.UserID == "" || payload.PodcastID == "" {
		return nil
	}

	user, err := c.Users.GetUser(ctx, payload.UserID)
	if err != nil {
		return err
	}
	title := payload.PodcastID
	if podcast, err := c.Catalog.GetPodcast(ctx, payload.PodcastID); err == nil {
		title = podcast.Title
	}

	if err := c.Mailer.SendReceipt(ctx, ports.ReceiptEmail{
		To:           user.Email,
		FirstName:    user.FirstName,
		PodcastTitle: title,
		AmountCents:  payload.AmountCents,
		Currency:     payload.Currency,
	}); err != nil {
		logger.Warn("receipt email failed",
			"event", "receipt_email_failed",
			"module", "commerce/checkout-service",
			"layer", "worker",
			"purchase_id", payload.PurchaseID,
			"error", err,
		)
		return nil
	}

	logger.Info("receipt email sent",
		"event", "receipt_email_sent",
		"module", "commerce/checkout-service",
		"layer", "worker",
		"purchase_id", payload.PurchaseID,
	)
	return nil
}
