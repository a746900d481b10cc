package commands

import (
	"context"
	"log/slog"

	application "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/application"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type CreateCategoryCommand struct {
	Name        string
	Slug        string
	Description string
	Icon        string
}

type CreateCategoryUseCase struct {
	Categories  ports.CategoryRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreateCategoryResult struct {
	Category entities.Category
}

func (uc CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (CreateCategoryResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	categoryID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateCategoryResult{}, err
	}
	category, err := entities.NewCategory(categoryID, cmd.Name, cmd.Slug, cmd.Description, cmd.Icon, now)
	if err != nil {
		return CreateCategoryResult{}, err
	}
	if err := uc.Categories.CreateCategory(ctx, category); err != nil {
		return CreateCategoryResult{}, err
	}

	logger.Info("category created",
		"event", "category_created",
		"module", "catalog/catalog-service",
		"layer", "application",
		"category_id", category.CategoryID,
		"slug", category.Slug,
	)
	return CreateCategoryResult{Category: category}, nil
}
