package catalogservice

import (
	"log/slog"

	httpadapter "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/adapters/http"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/adapters/memory"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Categories  ports.CategoryRepository
	Podcasts    ports.PodcastRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCategory := commands.CreateCategoryUseCase{
		Categories:  deps.Categories,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	createPodcast := commands.CreatePodcastUseCase{
		Categories:  deps.Categories,
		Podcasts:    deps.Podcasts,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updatePodcast := commands.UpdatePodcastUseCase{
		Categories: deps.Categories,
		Podcasts:   deps.Podcasts,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	deletePodcast := commands.DeletePodcastUseCase{
		Podcasts: deps.Podcasts,
		Logger:   deps.Logger,
	}

	listCategories := queries.ListCategoriesUseCase{
		Categories: deps.Categories,
	}
	listPodcastsByCategory := queries.ListPodcastsByCategoryUseCase{
		Categories: deps.Categories,
		Podcasts:   deps.Podcasts,
	}
	listAllPodcasts := queries.ListAllPodcastsUseCase{
		Podcasts: deps.Podcasts,
	}
	getPodcast := queries.GetPodcastUseCase{
		Categories: deps.Categories,
		Podcasts:   deps.Podcasts,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCategory:         createCategory,
			CreatePodcast:          createPodcast,
			UpdatePodcast:          updatePodcast,
			DeletePodcast:          deletePodcast,
			ListCategories:         listCategories,
			ListPodcastsByCategory: listPodcastsByCategory,
			ListAllPodcasts:        listAllPodcasts,
			GetPodcast:             getPodcast,
			Logger:                 deps.Logger,
		},
	}
}

func NewInMemoryModule(categories []entities.Category, podcasts []entities.Podcast, logger *slog.Logger) Module {
	store := memory.NewStore(categories, podcasts)
	module := NewModule(Dependencies{
		Categories:  store,
		Podcasts:    store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
