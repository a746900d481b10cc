package entitlementservice

import (
	"log/slog"

	httpadapter "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/adapters/http"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/adapters/memory"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Objects     ports.ObjectStore
	Auditor     ports.DownloadAuditor
	Podcasts    ports.PodcastResolver
	Purchases   ports.PurchaseReader
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	checkAccess := queries.CheckObjectAccessUseCase{
		Objects:   deps.Objects,
		Podcasts:  deps.Podcasts,
		Purchases: deps.Purchases,
	}
	downloadObject := commands.DownloadObjectUseCase{
		Objects:     deps.Objects,
		Auditor:     deps.Auditor,
		CheckAccess: checkAccess,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	uploadObject := commands.UploadObjectUseCase{
		Objects: deps.Objects,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	servePublic := queries.ServePublicObjectUseCase{
		Objects: deps.Objects,
	}

	return Module{
		Handler: httpadapter.Handler{
			CheckAccess:    checkAccess,
			DownloadObject: downloadObject,
			UploadObject:   uploadObject,
			ServePublic:    servePublic,
			Logger:         deps.Logger,
		},
	}
}

// NewInMemoryModule wires the engine over the in-memory object store.
// Podcast resolution and the purchase predicate come from the caller so
// tests can wire real catalog and checkout modules behind them.
func NewInMemoryModule(seed []entities.ObjectMetadata, podcasts ports.PodcastResolver, purchases ports.PurchaseReader, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Objects:     store,
		Auditor:     store,
		Podcasts:    podcasts,
		Purchases:   purchases,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
