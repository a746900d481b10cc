package errors

import "errors"

var (
	ErrInvalidCategoryInput = errors.New("invalid category data")
	ErrInvalidPodcastInput  = errors.New("invalid podcast data")
	ErrPriceBelowMinimum    = errors.New("price below minimum")
	ErrSlugTaken            = errors.New("slug already in use")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrPodcastNotFound      = errors.New("podcast not found")
)
