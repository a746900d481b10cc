package httptransport

import "time"

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CreatePodcastRequest struct {
	CategoryID      string `json:"categoryId"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int64  `json:"priceCents"`
	AudioObjectPath string `json:"audioObjectPath"`
}

type UpdatePodcastRequest struct {
	CategoryID      *string `json:"categoryId"`
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"durationMinutes"`
	PriceCents      *int64  `json:"priceCents"`
	AudioObjectPath *string `json:"audioObjectPath"`
	Active          *bool   `json:"active"`
}

type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PodcastDTO struct {
	ID              string       `json:"id"`
	CategoryID      string       `json:"categoryId"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Description     string       `json:"description"`
	DurationMinutes int          `json:"durationMinutes"`
	PriceCents      int64        `json:"priceCents"`
	AudioObjectPath string       `json:"audioObjectPath,omitempty"`
	Active          bool         `json:"active"`
	Category        *CategoryDTO `json:"category,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

type ListCategoriesResponse struct {
	Items []CategoryDTO `json:"items"`
}

type ListPodcastsResponse struct {
	Category *CategoryDTO `json:"category,omitempty"`
	Items    []PodcastDTO `json:"items"`
}

type PodcastResponse struct {
	Podcast PodcastDTO `json:"podcast"`
}

type CategoryResponse struct {
	Category CategoryDTO `json:"category"`
}
