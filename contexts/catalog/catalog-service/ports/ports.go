package ports

import (
	"context"
	"time"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category entities.Category) error
	GetCategoryBySlug(ctx context.Context, slug string) (entities.Category, error)
	GetCategory(ctx context.Context, categoryID string) (entities.Category, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
}

type PodcastUpdate struct {
	Title           *string
	Slug            *string
	Description     *string
	DurationMinutes *int
	PriceCents      *int64
	CategoryID      *string
	AudioObjectPath *string
	Active          *bool
}

type PodcastRepository interface {
	CreatePodcast(ctx context.Context, podcast entities.Podcast) error
	UpdatePodcast(ctx context.Context, podcastID string, update PodcastUpdate, now time.Time) (entities.Podcast, error)
	DeletePodcast(ctx context.Context, podcastID string) error
	GetPodcast(ctx context.Context, podcastID string) (entities.Podcast, error)
	GetPodcastBySlug(ctx context.Context, slug string) (entities.Podcast, error)
	// GetPodcastByAudioPath maps a stored object path back to the podcast
	// that sells it. Used by entitlement checks.
	GetPodcastByAudioPath(ctx context.Context, path string) (entities.Podcast, error)
	ListPodcastsByCategory(ctx context.Context, categoryID string) ([]entities.Podcast, error)
	ListAllPodcasts(ctx context.Context) ([]entities.Podcast, error)
}
