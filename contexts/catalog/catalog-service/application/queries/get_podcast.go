package queries

import (
	"context"
	"strings"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type PodcastWithCategory struct {
	Podcast  entities.Podcast
	Category entities.Category
}

type GetPodcastUseCase struct {
	Categories ports.CategoryRepository
	Podcasts   ports.PodcastRepository
}

func (uc GetPodcastUseCase) BySlug(ctx context.Context, slug string) (PodcastWithCategory, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return PodcastWithCategory{}, domainerrors.ErrPodcastNotFound
	}
	podcast, err := uc.Podcasts.GetPodcastBySlug(ctx, slug)
	if err != nil {
		return PodcastWithCategory{}, err
	}
	return uc.withCategory(ctx, podcast)
}

func (uc GetPodcastUseCase) ByID(ctx context.Context, podcastID string) (PodcastWithCategory, error) {
	podcastID = strings.TrimSpace(podcastID)
	if podcastID == "" {
		return PodcastWithCategory{}, domainerrors.ErrPodcastNotFound
	}
	podcast, err := uc.Podcasts.GetPodcast(ctx, podcastID)
	if err != nil {
		return PodcastWithCategory{}, err
	}
	return uc.withCategory(ctx, podcast)
}

// ByAudioPath maps a stored object path to the podcast selling it.
func (uc GetPodcastUseCase) ByAudioPath(ctx context.Context, path string) (entities.Podcast, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return entities.Podcast{}, domainerrors.ErrPodcastNotFound
	}
	return uc.Podcasts.GetPodcastByAudioPath(ctx, path)
}

func (uc GetPodcastUseCase) withCategory(ctx context.Context, podcast entities.Podcast) (PodcastWithCategory, error) {
	category, err := uc.Categories.GetCategory(ctx, podcast.CategoryID)
	if err != nil {
		return PodcastWithCategory{}, err
	}
	return PodcastWithCategory{Podcast: podcast, Category: category}, nil
}
