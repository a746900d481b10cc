package entities

import (
	"strings"
	"time"

	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
)

// MinPriceCents is the floor for a sellable podcast price.
const MinPriceCents int64 = 100

type Podcast struct {
	PodcastID       string
	CategoryID      string
	Title           string
	Slug            string
	Description     string
	DurationMinutes int
	PriceCents      int64
	AudioObjectPath string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewPodcast(podcastID, categoryID, title, slug, description string, durationMinutes int, priceCents int64, audioObjectPath string, now time.Time) (Podcast, error) {
	title = strings.TrimSpace(title)
	slug = normalizeSlug(slug)
	if podcastID == "" || categoryID == "" || title == "" || slug == "" || durationMinutes <= 0 {
		return Podcast{}, domainerrors.ErrInvalidPodcastInput
	}
	if priceCents < MinPriceCents {
		return Podcast{}, domainerrors.ErrPriceBelowMinimum
	}
	return Podcast{
		PodcastID:       podcastID,
		CategoryID:      categoryID,
		Title:           title,
		Slug:            slug,
		Description:     strings.TrimSpace(description),
		DurationMinutes: durationMinutes,
		PriceCents:      priceCents,
		AudioObjectPath: strings.TrimSpace(audioObjectPath),
		Active:          true,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}, nil
}
