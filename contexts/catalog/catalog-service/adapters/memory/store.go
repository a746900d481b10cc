package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type Store struct {
	mu sync.RWMutex

	categories map[string]entities.Category
	podcasts   map[string]entities.Podcast
}

func NewStore(categories []entities.Category, podcasts []entities.Podcast) *Store {
	categoryMap := make(map[string]entities.Category, len(categories))
	for _, item := range categories {
		categoryMap[item.CategoryID] = item
	}
	podcastMap := make(map[string]entities.Podcast, len(podcasts))
	for _, item := range podcasts {
		podcastMap[item.PodcastID] = item
	}
	return &Store{
		categories: categoryMap,
		podcasts:   podcastMap,
	}
}

func (s *Store) CreateCategory(_ context.Context, category entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Slug == category.Slug {
			return domainerrors.ErrSlugTaken
		}
	}
	s.categories[category.CategoryID] = category
	return nil
}

func (s *Store) GetCategoryBySlug(_ context.Context, slug string) (entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.categories {
		if item.Slug == strings.ToLower(strings.TrimSpace(slug)) {
			return item, nil
		}
	}
	return entities.Category{}, domainerrors.ErrCategoryNotFound
}

func (s *Store) GetCategory(_ context.Context, categoryID string) (entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.categories[strings.TrimSpace(categoryID)]
	if !exists {
		return entities.Category{}, domainerrors.ErrCategoryNotFound
	}
	return item, nil
}

func (s *Store) ListCategories(_ context.Context) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Category, 0, len(s.categories))
	for _, item := range s.categories {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *Store) CreatePodcast(_ context.Context, podcast entities.Podcast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.podcasts {
		if existing.Slug == podcast.Slug {
			return domainerrors.ErrSlugTaken
		}
	}
	s.podcasts[podcast.PodcastID] = podcast
	return nil
}

func (s *Store) UpdatePodcast(_ context.Context, podcastID string, update ports.PodcastUpdate, now time.Time) (entities.Podcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	podcast, exists := s.podcasts[strings.TrimSpace(podcastID)]
	if !exists {
		return entities.Podcast{}, domainerrors.ErrPodcastNotFound
	}
	if update.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*update.Slug))
		for id, existing := range s.podcasts {
			if id != podcast.PodcastID && existing.Slug == slug {
				return entities.Podcast{}, domainerrors.ErrSlugTaken
			}
		}
		podcast.Slug = slug
	}
	if update.Title != nil {
		podcast.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		podcast.Description = strings.TrimSpace(*update.Description)
	}
	if update.DurationMinutes != nil {
		podcast.DurationMinutes = *update.DurationMinutes
	}
	if update.PriceCents != nil {
		podcast.PriceCents = *update.PriceCents
	}
	if update.CategoryID != nil {
		podcast.CategoryID = strings.TrimSpace(*update.CategoryID)
	}
	if update.AudioObjectPath != nil {
		podcast.AudioObjectPath = strings.TrimSpace(*update.AudioObjectPath)
	}
	if update.Active != nil {
		podcast.Active = *update.Active
	}
	podcast.UpdatedAt = now.UTC()
	s.podcasts[podcast.PodcastID] = podcast
	return podcast, nil
}

func (s *Store) DeletePodcast(_ context.Context, podcastID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.podcasts[strings.TrimSpace(podcastID)]; !exists {
		return domainerrors.ErrPodcastNotFound
	}
	delete(s.podcasts, strings.TrimSpace(podcastID))
	return nil
}

func (s *Store) GetPodcast(_ context.Context, podcastID string) (entities.Podcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.podcasts[strings.TrimSpace(podcastID)]
	if !exists {
		return entities.Podcast{}, domainerrors.ErrPodcastNotFound
	}
	return item, nil
}

func (s *Store) GetPodcastBySlug(_ context.Context, slug string) (entities.Podcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.podcasts {
		if item.Slug == strings.ToLower(strings.TrimSpace(slug)) {
			return item, nil
		}
	}
	return entities.Podcast{}, domainerrors.ErrPodcastNotFound
}

func (s *Store) GetPodcastByAudioPath(_ context.Context, path string) (entities.Podcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.podcasts {
		if item.AudioObjectPath != "" && item.AudioObjectPath == strings.TrimSpace(path) {
			return item, nil
		}
	}
	return entities.Podcast{}, domainerrors.ErrPodcastNotFound
}

func (s *Store) ListPodcastsByCategory(_ context.Context, categoryID string) ([]entities.Podcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Podcast, 0)
	for _, item := range s.podcasts {
		if item.CategoryID == strings.TrimSpace(categoryID) && item.Active {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Title < items[j].Title
	})
	return items, nil
}

func (s *Store) ListAllPodcasts(_ context.Context) ([]entities.Podcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Podcast, 0, len(s.podcasts))
	for _, item := range s.podcasts {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
