package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

type ConfirmPurchaseCommand struct {
	UserID          string
	PaymentIntentID string
}

type ConfirmPurchaseUseCase struct {
	Purchases   ports.PurchaseRepository
	Gateway     ports.PaymentGateway
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type ConfirmPurchaseResult struct {
	Purchase entities.Purchase
	Replayed bool
}

// Execute settles a purchase after re-verifying with the processor that the
// intent actually succeeded; the client's claim is never trusted. Concurrent
// confirmations for the same (user, podcast) are resolved by the storage
// uniqueness constraint on completed rows; the loser replays the winner's
// purchase as success.
func (uc ConfirmPurchaseUseCase) Execute(ctx context.Context, cmd ConfirmPurchaseCommand) (ConfirmPurchaseResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	intentID := strings.TrimSpace(cmd.PaymentIntentID)
	if intentID == "" {
		return ConfirmPurchaseResult{}, domainerrors.ErrInvalidRequest
	}

	purchase, err := uc.Purchases.GetByIntentID(ctx, intentID)
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}
	if userID := strings.TrimSpace(cmd.UserID); userID != "" && purchase.UserID != userID {
		return ConfirmPurchaseResult{}, domainerrors.ErrPurchaseNotFound
	}
	if purchase.Completed() {
		return ConfirmPurchaseResult{Purchase: purchase, Replayed: true}, nil
	}

	intent, err := uc.Gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}
	if intent.Status != ports.IntentStatusSucceeded {
		return ConfirmPurchaseResult{}, domainerrors.ErrPaymentNotSettled
	}

	now := uc.Clock.Now().UTC()
	amount := intent.AmountCents
	if amount <= 0 {
		amount = purchase.AmountCents
	}
	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}
	envelope, err := newPurchaseEnvelope(
		eventID,
		"purchase.completed",
		purchase.PurchaseID,
		now,
		map[string]any{
			"purchase_id":  purchase.PurchaseID,
			"user_id":      purchase.UserID,
			"podcast_id":   purchase.PodcastID,
			"amount_cents": amount,
			"currency":     purchase.Currency,
		},
	)
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}

	completed, err := uc.Purchases.MarkCompletedWithOutbox(ctx, purchase.PurchaseID, amount, now, envelope)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyPurchased) {
			existing, readErr := uc.Purchases.GetCompleted(ctx, purchase.UserID, purchase.PodcastID)
			if readErr != nil {
				return ConfirmPurchaseResult{}, readErr
			}
			return ConfirmPurchaseResult{Purchase: existing, Replayed: true}, nil
		}
		return ConfirmPurchaseResult{}, err
	}

	logger.Info("purchase completed",
		"event", "purchase_completed",
		"module", "commerce/checkout-service",
		"layer", "application",
		"purchase_id", completed.PurchaseID,
		"user_id", completed.UserID,
		"podcast_id", completed.PodcastID,
		"payment_intent_id", completed.PaymentIntentID,
	)
	return ConfirmPurchaseResult{Purchase: completed}, nil
}
