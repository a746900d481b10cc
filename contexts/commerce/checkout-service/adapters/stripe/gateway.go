package stripeadapter

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

// Gateway settles payments through Stripe PaymentIntents.
type Gateway struct {
	api    *client.API
	logger *slog.Logger
}

func NewGateway(secretKey string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Gateway{
		api:    api,
		logger: logger,
	}
}

func (g *Gateway) CreateIntent(ctx context.Context, req ports.CreateIntentRequest) (ports.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return ports.Intent{}, err
	}
	return mapIntent(intent), nil
}

func (g *Gateway) RetrieveIntent(ctx context.Context, intentID string) (ports.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return ports.Intent{}, err
	}
	return mapIntent(intent), nil
}

func mapIntent(intent *stripe.PaymentIntent) ports.Intent {
	return ports.Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountCents:  intent.Amount,
		Currency:     string(intent.Currency),
	}
}
