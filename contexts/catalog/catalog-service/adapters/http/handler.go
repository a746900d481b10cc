package httpadapter

import (
	"context"
	"log/slog"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
	httptransport "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/transport/http"
)

type Handler struct {
	CreateCategory         commands.CreateCategoryUseCase
	CreatePodcast          commands.CreatePodcastUseCase
	UpdatePodcast          commands.UpdatePodcastUseCase
	DeletePodcast          commands.DeletePodcastUseCase
	ListCategories         queries.ListCategoriesUseCase
	ListPodcastsByCategory queries.ListPodcastsByCategoryUseCase
	ListAllPodcasts        queries.ListAllPodcastsUseCase
	GetPodcast             queries.GetPodcastUseCase
	Logger                 *slog.Logger
}

func (h Handler) CreateCategoryHandler(ctx context.Context, req httptransport.CreateCategoryRequest) (httptransport.CategoryResponse, error) {
	result, err := h.CreateCategory.Execute(ctx, commands.CreateCategoryCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return httptransport.CategoryResponse{}, err
	}
	return httptransport.CategoryResponse{Category: mapCategory(result.Category)}, nil
}

func (h Handler) CreatePodcastHandler(ctx context.Context, req httptransport.CreatePodcastRequest) (httptransport.PodcastResponse, error) {
	result, err := h.CreatePodcast.Execute(ctx, commands.CreatePodcastCommand{
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		AudioObjectPath: req.AudioObjectPath,
	})
	if err != nil {
		return httptransport.PodcastResponse{}, err
	}
	return httptransport.PodcastResponse{Podcast: mapPodcast(result.Podcast, nil)}, nil
}

func (h Handler) UpdatePodcastHandler(ctx context.Context, podcastID string, req httptransport.UpdatePodcastRequest) (httptransport.PodcastResponse, error) {
	result, err := h.UpdatePodcast.Execute(ctx, commands.UpdatePodcastCommand{
		PodcastID: podcastID,
		Update: ports.PodcastUpdate{
			Title:           req.Title,
			Slug:            req.Slug,
			Description:     req.Description,
			DurationMinutes: req.DurationMinutes,
			PriceCents:      req.PriceCents,
			CategoryID:      req.CategoryID,
			AudioObjectPath: req.AudioObjectPath,
			Active:          req.Active,
		},
	})
	if err != nil {
		return httptransport.PodcastResponse{}, err
	}
	return httptransport.PodcastResponse{Podcast: mapPodcast(result.Podcast, nil)}, nil
}

func (h Handler) DeletePodcastHandler(ctx context.Context, podcastID string) error {
	return h.DeletePodcast.Execute(ctx, commands.DeletePodcastCommand{PodcastID: podcastID})
}

func (h Handler) ListCategoriesHandler(ctx context.Context) (httptransport.ListCategoriesResponse, error) {
	items, err := h.ListCategories.Execute(ctx)
	if err != nil {
		return httptransport.ListCategoriesResponse{}, err
	}
	result := make([]httptransport.CategoryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCategory(item))
	}
	return httptransport.ListCategoriesResponse{Items: result}, nil
}

func (h Handler) ListPodcastsByCategoryHandler(ctx context.Context, categorySlug string) (httptransport.ListPodcastsResponse, error) {
	listing, err := h.ListPodcastsByCategory.Execute(ctx, queries.ListPodcastsByCategoryQuery{CategorySlug: categorySlug})
	if err != nil {
		return httptransport.ListPodcastsResponse{}, err
	}
	category := mapCategory(listing.Category)
	items := make([]httptransport.PodcastDTO, 0, len(listing.Podcasts))
	for _, item := range listing.Podcasts {
		items = append(items, mapPodcast(item, &category))
	}
	return httptransport.ListPodcastsResponse{Category: &category, Items: items}, nil
}

func (h Handler) ListAllPodcastsHandler(ctx context.Context) (httptransport.ListPodcastsResponse, error) {
	items, err := h.ListAllPodcasts.Execute(ctx)
	if err != nil {
		return httptransport.ListPodcastsResponse{}, err
	}
	result := make([]httptransport.PodcastDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapPodcast(item, nil))
	}
	return httptransport.ListPodcastsResponse{Items: result}, nil
}

func (h Handler) GetPodcastBySlugHandler(ctx context.Context, slug string) (httptransport.PodcastResponse, error) {
	item, err := h.GetPodcast.BySlug(ctx, slug)
	if err != nil {
		return httptransport.PodcastResponse{}, err
	}
	category := mapCategory(item.Category)
	return httptransport.PodcastResponse{Podcast: mapPodcast(item.Podcast, &category)}, nil
}

func (h Handler) GetPodcastByIDHandler(ctx context.Context, podcastID string) (httptransport.PodcastResponse, error) {
	item, err := h.GetPodcast.ByID(ctx, podcastID)
	if err != nil {
		return httptransport.PodcastResponse{}, err
	}
	category := mapCategory(item.Category)
	return httptransport.PodcastResponse{Podcast: mapPodcast(item.Podcast, &category)}, nil
}

func mapCategory(category entities.Category) httptransport.CategoryDTO {
	return httptransport.CategoryDTO{
		ID:          category.CategoryID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Icon:        category.Icon,
		CreatedAt:   category.CreatedAt,
	}
}

func mapPodcast(podcast entities.Podcast, category *httptransport.CategoryDTO) httptransport.PodcastDTO {
	return httptransport.PodcastDTO{
		ID:              podcast.PodcastID,
		CategoryID:      podcast.CategoryID,
		Title:           podcast.Title,
		Slug:            podcast.Slug,
		Description:     podcast.Description,
		DurationMinutes: podcast.DurationMinutes,
		PriceCents:      podcast.PriceCents,
		AudioObjectPath: podcast.AudioObjectPath,
		Active:          podcast.Active,
		Category:        category,
		CreatedAt:       podcast.CreatedAt,
	}
}
