package queries

import (
	"context"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type ListCategoriesUseCase struct {
	Categories ports.CategoryRepository
}

func (uc ListCategoriesUseCase) Execute(ctx context.Context) ([]entities.Category, error) {
	return uc.Categories.ListCategories(ctx)
}
