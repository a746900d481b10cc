package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type DeletePodcastCommand struct {
	PodcastID string
}

type DeletePodcastUseCase struct {
	Podcasts ports.PodcastRepository
	Logger   *slog.Logger
}

func (uc DeletePodcastUseCase) Execute(ctx context.Context, cmd DeletePodcastCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	podcastID := strings.TrimSpace(cmd.PodcastID)
	if podcastID == "" {
		return domainerrors.ErrPodcastNotFound
	}
	if err := uc.Podcasts.DeletePodcast(ctx, podcastID); err != nil {
		return err
	}

	logger.Info("podcast deleted",
		"event", "podcast_deleted",
		"module", "catalog/catalog-service",
		"layer", "application",
		"podcast_id", podcastID,
	)
	return nil
}
