package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domainerrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

// Gateway is a scripted in-memory payment processor. Tests drive settlement
// by flipping intent status with SetIntentStatus; CreateCalls counts gateway
// round trips so the duplicate-purchase guard can be asserted.
type Gateway struct {
	mu sync.Mutex

	intents     map[string]ports.Intent
	counter     int
	createCalls int
}

func NewGateway() *Gateway {
	return &Gateway{
		intents: make(map[string]ports.Intent),
	}
}

func (g *Gateway) CreateIntent(_ context.Context, req ports.CreateIntentRequest) (ports.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.createCalls++
	g.counter++
	intent := ports.Intent{
		ID:           fmt.Sprintf("pi_test_%d", g.counter),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", g.counter),
		Status:       "requires_payment_method",
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *Gateway) RetrieveIntent(_ context.Context, intentID string) (ports.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, exists := g.intents[strings.TrimSpace(intentID)]
	if !exists {
		return ports.Intent{}, domainerrors.ErrPurchaseNotFound
	}
	return intent, nil
}

// SetIntentStatus scripts the processor-side outcome of an intent.
func (g *Gateway) SetIntentStatus(intentID string, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if intent, exists := g.intents[intentID]; exists {
		intent.Status = status
		g.intents[intentID] = intent
	}
}

func (g *Gateway) CreateCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls
}
