package queries

import (
	"context"
	"strings"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

type ListPurchasesQuery struct {
	UserID string
}

type PurchaseView struct {
	Purchase entities.Purchase
	Podcast  ports.PodcastInfo
}

type ListPurchasesUseCase struct {
	Purchases ports.PurchaseRepository
	Catalog   ports.CatalogReader
}

// Execute returns the user's completed purchases enriched with catalog data.
// A podcast deleted after purchase still yields the bare purchase row.
func (uc ListPurchasesUseCase) Execute(ctx context.Context, query ListPurchasesQuery) ([]PurchaseView, error) {
	userID := strings.TrimSpace(query.UserID)
	if userID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}

	purchases, err := uc.Purchases.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]PurchaseView, 0, len(purchases))
	for _, purchase := range purchases {
		view := PurchaseView{Purchase: purchase}
		if podcast, err := uc.Catalog.GetPodcast(ctx, purchase.PodcastID); err == nil {
			view.Podcast = podcast
		}
		views = append(views, view)
	}
	return views, nil
}
