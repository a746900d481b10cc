package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type CreatePodcastCommand struct {
	CategoryID      string
	Title           string
	Slug            string
	Description     string
	DurationMinutes int
	PriceCents      int64
	AudioObjectPath string
}

type CreatePodcastUseCase struct {
	Categories  ports.CategoryRepository
	Podcasts    ports.PodcastRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreatePodcastResult struct {
	Podcast entities.Podcast
}

func (uc CreatePodcastUseCase) Execute(ctx context.Context, cmd CreatePodcastCommand) (CreatePodcastResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	if _, err := uc.Categories.GetCategory(ctx, strings.TrimSpace(cmd.CategoryID)); err != nil {
		return CreatePodcastResult{}, err
	}
	podcastID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreatePodcastResult{}, err
	}
	podcast, err := entities.NewPodcast(
		podcastID,
		strings.TrimSpace(cmd.CategoryID),
		cmd.Title,
		cmd.Slug,
		cmd.Description,
		cmd.DurationMinutes,
		cmd.PriceCents,
		cmd.AudioObjectPath,
		now,
	)
	if err != nil {
		return CreatePodcastResult{}, err
	}
	if err := uc.Podcasts.CreatePodcast(ctx, podcast); err != nil {
		return CreatePodcastResult{}, err
	}

	logger.Info("podcast created",
		"event", "podcast_created",
		"module", "catalog/catalog-service",
		"layer", "application",
		"podcast_id", podcast.PodcastID,
		"slug", podcast.Slug,
	)
	return CreatePodcastResult{Podcast: podcast}, nil
}
