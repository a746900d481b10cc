package checkoutservice

import (
	"log/slog"
	"time"

	httpadapter "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/adapters/http"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/adapters/memory"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/workers"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Relay      workers.OutboxRelay
	Reconciler workers.SettlementReconciler
	Receipts   workers.ReceiptConsumer
	Purchases  ports.PurchaseRepository
	Store      *memory.Store
	Gateway    *memory.Gateway
}

type Dependencies struct {
	Purchases        ports.PurchaseRepository
	Outbox           ports.OutboxRepository
	Catalog          ports.CatalogReader
	Users            ports.UserReader
	Gateway          ports.PaymentGateway
	Publisher        ports.EventPublisher
	Mailer           ports.Mailer
	Clock            ports.Clock
	IDGenerator      ports.IDGenerator
	Currency         string
	PendingOlderThan time.Duration
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createPaymentIntent := commands.CreatePaymentIntentUseCase{
		Purchases:   deps.Purchases,
		Catalog:     deps.Catalog,
		Gateway:     deps.Gateway,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Currency:    deps.Currency,
		Logger:      deps.Logger,
	}
	confirmPurchase := commands.ConfirmPurchaseUseCase{
		Purchases:   deps.Purchases,
		Gateway:     deps.Gateway,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	listPurchases := queries.ListPurchasesUseCase{
		Purchases: deps.Purchases,
		Catalog:   deps.Catalog,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreatePaymentIntent: createPaymentIntent,
			ConfirmPurchase:     confirmPurchase,
			ListPurchases:       listPurchases,
			Logger:              deps.Logger,
		},
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		Reconciler: workers.SettlementReconciler{
			Purchases:        deps.Purchases,
			Confirm:          confirmPurchase,
			Clock:            deps.Clock,
			PendingOlderThan: deps.PendingOlderThan,
			Logger:           deps.Logger,
		},
		Receipts: workers.ReceiptConsumer{
			Users:   deps.Users,
			Catalog: deps.Catalog,
			Mailer:  deps.Mailer,
			Logger:  deps.Logger,
		},
		Purchases: deps.Purchases,
	}
}

// NewInMemoryModule wires the module over in-memory storage and a scripted
// payment gateway.
func NewInMemoryModule(seed []entities.Purchase, catalog ports.CatalogReader, users ports.UserReader, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	gateway := memory.NewGateway()
	module := NewModule(Dependencies{
		Purchases:   store,
		Outbox:      store,
		Catalog:     catalog,
		Users:       users,
		Gateway:     gateway,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Gateway = gateway
	return module
}
