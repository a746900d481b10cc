package entities

import (
	"strings"
	"time"

	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
)

type Category struct {
	CategoryID  string
	Name        string
	Slug        string
	Description string
	Icon        string
	CreatedAt   time.Time
}

func NewCategory(categoryID, name, slug, description, icon string, now time.Time) (Category, error) {
	name = strings.TrimSpace(name)
	slug = normalizeSlug(slug)
	if categoryID == "" || name == "" || slug == "" {
		return Category{}, domainerrors.ErrInvalidCategoryInput
	}
	return Category{
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(description),
		Icon:        strings.TrimSpace(icon),
		CreatedAt:   now.UTC(),
	}, nil
}

func normalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, r := range slug {
		if r != '-' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return slug
}
