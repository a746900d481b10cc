package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
)

func TestNewPodcastValidation(t *testing.T) {
	now := time.Now()

	podcast, err := NewPodcast("pod-1", "cat-1", "  Title  ", "SLUG-1", "", 30, 1900, "podcasts/slug-1.mp3", now)
	if err != nil {
		t.Fatalf("valid podcast: %v", err)
	}
	if podcast.Title != "Title" || podcast.Slug != "slug-1" {
		t.Fatalf("title and slug should be normalized, got %q %q", podcast.Title, podcast.Slug)
	}
	if !podcast.Active {
		t.Fatal("new podcasts start active")
	}

	if _, err := NewPodcast("pod-1", "cat-1", "Title", "slug-1", "", 0, 1900, "", now); !errors.Is(err, domainerrors.ErrInvalidPodcastInput) {
		t.Fatalf("zero duration should be rejected, got %v", err)
	}
	if _, err := NewPodcast("pod-1", "cat-1", "Title", "bad slug", "", 30, 1900, "", now); !errors.Is(err, domainerrors.ErrInvalidPodcastInput) {
		t.Fatalf("invalid slug should be rejected, got %v", err)
	}
	if _, err := NewPodcast("pod-1", "cat-1", "Title", "slug-1", "", 30, MinPriceCents-1, "", now); !errors.Is(err, domainerrors.ErrPriceBelowMinimum) {
		t.Fatalf("price below floor should be rejected, got %v", err)
	}
}
