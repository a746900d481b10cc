package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type UpdatePodcastCommand struct {
	PodcastID string
	Update    ports.PodcastUpdate
}

type UpdatePodcastUseCase struct {
	Categories ports.CategoryRepository
	Podcasts   ports.PodcastRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

type UpdatePodcastResult struct {
	Podcast entities.Podcast
}

// Execute applies a partial update. Price and slug changes go through the
// same validation the constructor enforces.
func (uc UpdatePodcastUseCase) Execute(ctx context.Context, cmd UpdatePodcastCommand) (UpdatePodcastResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	podcastID := strings.TrimSpace(cmd.PodcastID)
	if podcastID == "" {
		return UpdatePodcastResult{}, domainerrors.ErrPodcastNotFound
	}
	update := cmd.Update
	if update.PriceCents != nil && *update.PriceCents < entities.MinPriceCents {
		return UpdatePodcastResult{}, domainerrors.ErrPriceBelowMinimum
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return UpdatePodcastResult{}, domainerrors.ErrInvalidPodcastInput
	}
	if update.DurationMinutes != nil && *update.DurationMinutes <= 0 {
		return UpdatePodcastResult{}, domainerrors.ErrInvalidPodcastInput
	}
	if update.CategoryID != nil {
		if _, err := uc.Categories.GetCategory(ctx, strings.TrimSpace(*update.CategoryID)); err != nil {
			return UpdatePodcastResult{}, err
		}
	}

	now := uc.Clock.Now().UTC()
	podcast, err := uc.Podcasts.UpdatePodcast(ctx, podcastID, update, now)
	if err != nil {
		return UpdatePodcastResult{}, err
	}

	logger.Info("podcast updated",
		"event", "podcast_updated",
		"module", "catalog/catalog-service",
		"layer", "application",
		"podcast_id", podcast.PodcastID,
	)
	return UpdatePodcastResult{Podcast: podcast}, nil
}
