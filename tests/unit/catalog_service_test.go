package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	catalogservice "github.com/00kaito/DevBytes/contexts/catalog/catalog-service"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	httptransport "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/transport/http"
)

func seedCategory() entities.Category {
	return entities.Category{
		CategoryID: "cat-go",
		Name:       "Go",
		Slug:       "go",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
}

func TestCreatePodcastInCategory(t *testing.T) {
	module := catalogservice.NewInMemoryModule([]entities.Category{seedCategory()}, nil, nil)

	resp, err := module.Handler.CreatePodcastHandler(context.Background(), httptransport.CreatePodcastRequest{
		CategoryID:      "cat-go",
		Title:           "Generics in Practice",
		Slug:            "generics-in-practice",
		DurationMinutes: 42,
		PriceCents:      2900,
		AudioObjectPath: "podcasts/generics-in-practice.mp3",
	})
	if err != nil {
		t.Fatalf("create podcast: %v", err)
	}
	if !resp.Podcast.Active {
		t.Fatal("new podcasts should be active")
	}

	got, err := module.Handler.GetPodcastBySlugHandler(context.Background(), "generics-in-practice")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.Podcast.Category == nil || got.Podcast.Category.Slug != "go" {
		t.Fatalf("podcast detail should carry its category, got %+v", got.Podcast.Category)
	}
}

func TestCreatePodcastValidation(t *testing.T) {
	module := catalogservice.NewInMemoryModule([]entities.Category{seedCategory()}, nil, nil)

	_, err := module.Handler.CreatePodcastHandler(context.Background(), httptransport.CreatePodcastRequest{
		CategoryID:      "cat-go",
		Title:           "Too Cheap",
		Slug:            "too-cheap",
		DurationMinutes: 10,
		PriceCents:      99,
	})
	if !errors.Is(err, domainerrors.ErrPriceBelowMinimum) {
		t.Fatalf("expected price below minimum, got %v", err)
	}

	_, err = module.Handler.CreatePodcastHandler(context.Background(), httptransport.CreatePodcastRequest{
		CategoryID:      "cat-missing",
		Title:           "Orphan",
		Slug:            "orphan",
		DurationMinutes: 10,
		PriceCents:      1900,
	})
	if !errors.Is(err, domainerrors.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestPodcastSlugConflict(t *testing.T) {
	module := catalogservice.NewInMemoryModule([]entities.Category{seedCategory()}, nil, nil)

	req := httptransport.CreatePodcastRequest{
		CategoryID:      "cat-go",
		Title:           "Original",
		Slug:            "shared-slug",
		DurationMinutes: 20,
		PriceCents:      1900,
	}
	if _, err := module.Handler.CreatePodcastHandler(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	req.Title = "Copycat"
	_, err := module.Handler.CreatePodcastHandler(context.Background(), req)
	if !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("expected slug taken, got %v", err)
	}
}

func TestCategoryListingShowsOnlyActivePodcasts(t *testing.T) {
	module := catalogservice.NewInMemoryModule(
		[]entities.Category{seedCategory()},
		[]entities.Podcast{
			{
				PodcastID:       "pod-active",
				CategoryID:      "cat-go",
				Title:           "Active Episode",
				Slug:            "active-episode",
				DurationMinutes: 30,
				PriceCents:      1900,
				Active:          true,
				CreatedAt:       time.Now().Add(-2 * time.Hour),
			},
			{
				PodcastID:       "pod-hidden",
				CategoryID:      "cat-go",
				Title:           "Hidden Episode",
				Slug:            "hidden-episode",
				DurationMinutes: 30,
				PriceCents:      1900,
				Active:          false,
				CreatedAt:       time.Now().Add(-time.Hour),
			},
		}, nil)

	listing, err := module.Handler.ListPodcastsByCategoryHandler(context.Background(), "go")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(listing.Items) != 1 || listing.Items[0].ID != "pod-active" {
		t.Fatalf("public listing should hide inactive podcasts, got %+v", listing.Items)
	}

	_, err = module.Handler.ListPodcastsByCategoryHandler(context.Background(), "no-such-category")
	if !errors.Is(err, domainerrors.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}

	all, err := module.Handler.ListAllPodcastsHandler(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("admin listing should include inactive podcasts, got %d", len(all.Items))
	}
}

func TestUpdatePodcastRejectsBelowMinimumPrice(t *testing.T) {
	module := catalogservice.NewInMemoryModule(
		[]entities.Category{seedCategory()},
		[]entities.Podcast{
			{
				PodcastID:       "pod-1",
				CategoryID:      "cat-go",
				Title:           "Episode",
				Slug:            "episode",
				DurationMinutes: 30,
				PriceCents:      1900,
				Active:          true,
				CreatedAt:       time.Now().Add(-time.Hour),
			},
		}, nil)

	badPrice := int64(10)
	_, err := module.Handler.UpdatePodcastHandler(context.Background(), "pod-1", httptransport.UpdatePodcastRequest{
		PriceCents: &badPrice,
	})
	if !errors.Is(err, domainerrors.ErrPriceBelowMinimum) {
		t.Fatalf("expected price below minimum, got %v", err)
	}

	newPrice := int64(4900)
	inactive := false
	updated, err := module.Handler.UpdatePodcastHandler(context.Background(), "pod-1", httptransport.UpdatePodcastRequest{
		PriceCents: &newPrice,
		Active:     &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Podcast.PriceCents != 4900 || updated.Podcast.Active {
		t.Fatalf("update should apply both fields, got %+v", updated.Podcast)
	}
}

func TestDeletePodcastIsHardDelete(t *testing.T) {
	module := catalogservice.NewInMemoryModule(
		[]entities.Category{seedCategory()},
		[]entities.Podcast{
			{
				PodcastID:       "pod-1",
				CategoryID:      "cat-go",
				Title:           "Episode",
				Slug:            "episode",
				DurationMinutes: 30,
				PriceCents:      1900,
				Active:          true,
				CreatedAt:       time.Now().Add(-time.Hour),
			},
		}, nil)

	if err := module.Handler.DeletePodcastHandler(context.Background(), "pod-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := module.Handler.GetPodcastByIDHandler(context.Background(), "pod-1")
	if !errors.Is(err, domainerrors.ErrPodcastNotFound) {
		t.Fatalf("deleted podcast should be gone, got %v", err)
	}
	if err := module.Handler.DeletePodcastHandler(context.Background(), "pod-1"); !errors.Is(err, domainerrors.ErrPodcastNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestCreateCategoryNormalizesSlug(t *testing.T) {
	module := catalogservice.NewInMemoryModule(nil, nil, nil)

	resp, err := module.Handler.CreateCategoryHandler(context.Background(), httptransport.CreateCategoryRequest{
		Name: "Cloud Native",
		Slug: "Cloud-Native",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if resp.Category.Slug != "cloud-native" {
		t.Fatalf("slug should be lowercased, got %q", resp.Category.Slug)
	}

	_, err = module.Handler.CreateCategoryHandler(context.Background(), httptransport.CreateCategoryRequest{
		Name: "Bad Slug",
		Slug: "cloud native",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCategoryInput) {
		t.Fatalf("slug with spaces should be rejected, got %v", err)
	}

	_, err = module.Handler.CreateCategoryHandler(context.Background(), httptransport.CreateCategoryRequest{
		Name: "Cloud Native Again",
		Slug: "cloud-native",
	})
	if !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("expected slug taken, got %v", err)
	}
}
