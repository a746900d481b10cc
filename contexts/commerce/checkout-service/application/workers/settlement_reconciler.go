package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/commands"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

// SettlementReconciler sweeps stale pending purchases and completes the ones
// whose intent settled at the processor after the client went away. It runs
// the same confirm path the HTTP boundary uses, so entitlements derived from
// a reconciled purchase are indistinguishable from a normal confirmation.
type SettlementReconciler struct {
	Purchases        ports.PurchaseRepository
	Confirm          commands.ConfirmPurchaseUseCase
	Clock            ports.Clock
	PendingOlderThan time.Duration
	BatchSize        int
	Logger           *slog.Logger
}

func (j SettlementReconciler) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	olderThan := j.PendingOlderThan
	if olderThan <= 0 {
		olderThan = 15 * time.Minute
	}
	limit := j.BatchSize
	if limit <= 0 {
		limit = 50
	}

	stale, err := j.Purchases.ListStalePending(ctx, now.Add(-olderThan), limit)
	if err != nil {
		logger.Error("settlement sweep failed",
			"event", "settlement_sweep_failed",
			"module", "commerce/checkout-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	reconciled := 0
	for _, purchase := range stale {
		_, err := j.Confirm.Execute(ctx, commands.ConfirmPurchaseCommand{
			UserID:          purchase.UserID,
			PaymentIntentID: purchase.PaymentIntentID,
		})
		switch {
		case err == nil:
			reconciled++
		case errors.Is(err, domainerrors.ErrPaymentNotSettled):
			// Still unpaid at the processor, swept again next cycle.
		default:
			logger.Error("settlement reconcile failed",
				"event", "settlement_reconcile_failed",
				"module", "commerce/checkout-service",
				"layer", "worker",
				"purchase_id", purchase.PurchaseID,
				"payment_intent_id", purchase.PaymentIntentID,
				"error", err.Error(),
			)
		}
	}

	if reconciled > 0 {
		logger.Info("settlement sweep completed",
			"event", "settlement_sweep_completed",
			"module", "commerce/checkout-service",
			"layer", "worker",
			"reconciled_count", reconciled,
			"stale_count", len(stale),
		)
	}
	return nil
}
