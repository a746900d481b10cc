package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

type CreatePaymentIntentCommand struct {
	UserID    string
	PodcastID string
}

type CreatePaymentIntentUseCase struct {
	Purchases   ports.PurchaseRepository
	Catalog     ports.CatalogReader
	Gateway     ports.PaymentGateway
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Currency    string
	Logger      *slog.Logger
}

type CreatePaymentIntentResult struct {
	ClientSecret    string
	PaymentIntentID string
	AmountCents     int64
	Currency        string
}

// Execute opens a settlement attempt. The duplicate-purchase guard runs
// before any gateway call so an already-entitled user never reaches the
// processor. The amount is re-read from the catalog. The pending purchase row
// written last is the anchor the reconciler sweeps if the client disconnects
// before confirming.
func (uc CreatePaymentIntentUseCase) Execute(ctx context.Context, cmd CreatePaymentIntentCommand) (CreatePaymentIntentResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	podcastID := strings.TrimSpace(cmd.PodcastID)
	if userID == "" || podcastID == "" {
		return CreatePaymentIntentResult{}, domainerrors.ErrInvalidRequest
	}

	owned, err := uc.Purchases.HasCompletedPurchase(ctx, userID, podcastID)
	if err != nil {
		return CreatePaymentIntentResult{}, err
	}
	if owned {
		return CreatePaymentIntentResult{}, domainerrors.ErrAlreadyPurchased
	}

	podcast, err := uc.Catalog.GetPodcast(ctx, podcastID)
	if err != nil {
		return CreatePaymentIntentResult{}, err
	}

	currency := uc.Currency
	if currency == "" {
		currency = "pln"
	}
	intent, err := uc.Gateway.CreateIntent(ctx, ports.CreateIntentRequest{
		AmountCents: podcast.PriceCents,
		Currency:    currency,
		Metadata: map[string]string{
			"user_id":    userID,
			"podcast_id": podcastID,
		},
	})
	if err != nil {
		return CreatePaymentIntentResult{}, err
	}

	purchaseID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreatePaymentIntentResult{}, err
	}
	now := uc.Clock.Now().UTC()
	pending := entities.Purchase{
		PurchaseID:      purchaseID,
		UserID:          userID,
		PodcastID:       podcastID,
		AmountCents:     podcast.PriceCents,
		Currency:        currency,
		PaymentIntentID: intent.ID,
		Status:          entities.PurchaseStatusPending,
		CreatedAt:       now,
	}
	if err := uc.Purchases.CreatePending(ctx, pending); err != nil {
		return CreatePaymentIntentResult{}, err
	}

	logger.Info("payment intent created",
		"event", "payment_intent_created",
		"module", "commerce/checkout-service",
		"layer", "application",
		"user_id", userID,
		"podcast_id", podcastID,
		"payment_intent_id", intent.ID,
		"amount_cents", podcast.PriceCents,
	)
	return CreatePaymentIntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		AmountCents:     podcast.PriceCents,
		Currency:        currency,
	}, nil
}
