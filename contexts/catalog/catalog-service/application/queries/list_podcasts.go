package queries

import (
	"context"
	"strings"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type ListPodcastsByCategoryQuery struct {
	CategorySlug string
}

type ListPodcastsByCategoryUseCase struct {
	Categories ports.CategoryRepository
	Podcasts   ports.PodcastRepository
}

type PodcastListing struct {
	Category entities.Category
	Podcasts []entities.Podcast
}

// Execute resolves the category by slug and returns its active podcasts.
func (uc ListPodcastsByCategoryUseCase) Execute(ctx context.Context, query ListPodcastsByCategoryQuery) (PodcastListing, error) {
	slug := strings.ToLower(strings.TrimSpace(query.CategorySlug))
	if slug == "" {
		return PodcastListing{}, domainerrors.ErrCategoryNotFound
	}
	category, err := uc.Categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return PodcastListing{}, err
	}
	podcasts, err := uc.Podcasts.ListPodcastsByCategory(ctx, category.CategoryID)
	if err != nil {
		return PodcastListing{}, err
	}
	return PodcastListing{Category: category, Podcasts: podcasts}, nil
}

type ListAllPodcastsUseCase struct {
	Podcasts ports.PodcastRepository
}

func (uc ListAllPodcastsUseCase) Execute(ctx context.Context) ([]entities.Podcast, error) {
	return uc.Podcasts.ListAllPodcasts(ctx)
}
