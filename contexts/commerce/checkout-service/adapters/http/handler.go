package httpadapter

import (
	"context"
	"log/slog"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/queries"
	httptransport "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/transport/http"
)

type Handler struct {
	CreatePaymentIntent commands.CreatePaymentIntentUseCase
	ConfirmPurchase     commands.ConfirmPurchaseUseCase
	ListPurchases       queries.ListPurchasesUseCase
	Logger              *slog.Logger
}

func (h Handler) CreatePaymentIntentHandler(ctx context.Context, userID string, req httptransport.CreatePaymentIntentRequest) (httptransport.CreatePaymentIntentResponse, error) {
	result, err := h.CreatePaymentIntent.Execute(ctx, commands.CreatePaymentIntentCommand{
		UserID:    userID,
		PodcastID: req.PodcastID,
	})
	if err != nil {
		return httptransport.CreatePaymentIntentResponse{}, err
	}
	return httptransport.CreatePaymentIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
		AmountCents:     result.AmountCents,
		Currency:        result.Currency,
	}, nil
}

// ConfirmPurchaseHandler runs on context.WithoutCancel so a client that
// disconnects mid-confirmation cannot abort the settlement write.
func (h Handler) ConfirmPurchaseHandler(ctx context.Context, userID string, req httptransport.ConfirmPurchaseRequest) (httptransport.ConfirmPurchaseResponse, error) {
	result, err := h.ConfirmPurchase.Execute(context.WithoutCancel(ctx), commands.ConfirmPurchaseCommand{
		UserID:          userID,
		PaymentIntentID: req.PaymentIntentID,
	})
	if err != nil {
		return httptransport.ConfirmPurchaseResponse{}, err
	}
	return httptransport.ConfirmPurchaseResponse{
		Purchase: mapPurchase(queries.PurchaseView{Purchase: result.Purchase}),
		Replayed: result.Replayed,
	}, nil
}

func (h Handler) ListPurchasesHandler(ctx context.Context, userID string) (httptransport.ListPurchasesResponse, error) {
	views, err := h.ListPurchases.Execute(ctx, queries.ListPurchasesQuery{UserID: userID})
	if err != nil {
		return httptransport.ListPurchasesResponse{}, err
	}
	items := make([]httptransport.PurchaseDTO, 0, len(views))
	for _, view := range views {
		items = append(items, mapPurchase(view))
	}
	return httptransport.ListPurchasesResponse{Items: items}, nil
}

func mapPurchase(view queries.PurchaseView) httptransport.PurchaseDTO {
	return httptransport.PurchaseDTO{
		ID:              view.Purchase.PurchaseID,
		PodcastID:       view.Purchase.PodcastID,
		PodcastTitle:    view.Podcast.Title,
		PodcastSlug:     view.Podcast.Slug,
		CategoryName:    view.Podcast.CategoryName,
		AmountCents:     view.Purchase.AmountCents,
		Currency:        view.Purchase.Currency,
		PaymentIntentID: view.Purchase.PaymentIntentID,
		Status:          string(view.Purchase.Status),
		PurchasedAt:     view.Purchase.CompletedAt,
	}
}
