package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCategory(ctx context.Context, category entities.Category) error {
	row := categoryModelFromEntity(category)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (entities.Category, error) {
	var row categoryModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Category{}, domainerrors.ErrCategoryNotFound
		}
		return entities.Category{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCategory(ctx context.Context, categoryID string) (entities.Category, error) {
	var row categoryModel
	err := r.db.WithContext(ctx).
		Where("category_id = ?", strings.TrimSpace(categoryID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Category{}, domainerrors.ErrCategoryNotFound
		}
		return entities.Category{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreatePodcast(ctx context.Context, podcast entities.Podcast) error {
	row := podcastModelFromEntity(podcast)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdatePodcast(ctx context.Context, podcastID string, update ports.PodcastUpdate, now time.Time) (entities.Podcast, error) {
	updates := map[string]any{"updated_at": now.UTC()}
	if update.Title != nil {
		updates["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Slug != nil {
		updates["slug"] = strings.ToLower(strings.TrimSpace(*update.Slug))
	}
	if update.Description != nil {
		updates["description"] = strings.TrimSpace(*update.Description)
	}
	if update.DurationMinutes != nil {
		updates["duration_minutes"] = *update.DurationMinutes
	}
	if update.PriceCents != nil {
		updates["price_cents"] = *update.PriceCents
	}
	if update.CategoryID != nil {
		updates["category_id"] = strings.TrimSpace(*update.CategoryID)
	}
	if update.AudioObjectPath != nil {
		updates["audio_object_path"] = strings.TrimSpace(*update.AudioObjectPath)
	}
	if update.Active != nil {
		updates["active"] = *update.Active
	}

	result := r.db.WithContext(ctx).
		Model(&podcastModel{}).
		Where("podcast_id = ?", strings.TrimSpace(podcastID)).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.Podcast{}, domainerrors.ErrSlugTaken
		}
		return entities.Podcast{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Podcast{}, domainerrors.ErrPodcastNotFound
	}
	return r.GetPodcast(ctx, podcastID)
}

func (r *Repository) DeletePodcast(ctx context.Context, podcastID string) error {
	result := r.db.WithContext(ctx).
		Where("podcast_id = ?", strings.TrimSpace(podcastID)).
		Delete(&podcastModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPodcastNotFound
	}
	return nil
}

func (r *Repository) GetPodcast(ctx context.Context, podcastID string) (entities.Podcast, error) {
	return r.getPodcastBy(ctx, "podcast_id = ?", strings.TrimSpace(podcastID))
}

func (r *Repository) GetPodcastBySlug(ctx context.Context, slug string) (entities.Podcast, error) {
	return r.getPodcastBy(ctx, "slug = ?", strings.ToLower(strings.TrimSpace(slug)))
}

func (r *Repository) GetPodcastByAudioPath(ctx context.Context, path string) (entities.Podcast, error) {
	if strings.TrimSpace(path) == "" {
		return entities.Podcast{}, domainerrors.ErrPodcastNotFound
	}
	return r.getPodcastBy(ctx, "audio_object_path = ?", strings.TrimSpace(path))
}

func (r *Repository) getPodcastBy(ctx context.Context, query string, arg any) (entities.Podcast, error) {
	var row podcastModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Podcast{}, domainerrors.ErrPodcastNotFound
		}
		return entities.Podcast{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPodcastsByCategory(ctx context.Context, categoryID string) ([]entities.Podcast, error) {
	var rows []podcastModel
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND active = ?", strings.TrimSpace(categoryID), true).
		Order("title ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Podcast, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListAllPodcasts(ctx context.Context) ([]entities.Podcast, error) {
	var rows []podcastModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Podcast, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type categoryModel struct {
	CategoryID  string    `gorm:"column:category_id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Slug        string    `gorm:"column:slug;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Icon        string    `gorm:"column:icon"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (categoryModel) TableName() string {
	return "catalog_categories"
}

func (m categoryModel) toEntity() entities.Category {
	return entities.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Icon:        m.Icon,
		CreatedAt:   m.CreatedAt,
	}
}

func categoryModelFromEntity(category entities.Category) categoryModel {
	return categoryModel{
		CategoryID:  category.CategoryID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Icon:        category.Icon,
		CreatedAt:   category.CreatedAt.UTC(),
	}
}

type podcastModel struct {
	PodcastID       string    `gorm:"column:podcast_id;primaryKey"`
	CategoryID      string    `gorm:"column:category_id;index"`
	Title           string    `gorm:"column:title"`
	Slug            string    `gorm:"column:slug;uniqueIndex"`
	Description     string    `gorm:"column:description"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	PriceCents      int64     `gorm:"column:price_cents"`
	AudioObjectPath string    `gorm:"column:audio_object_path;index"`
	Active          bool      `gorm:"column:active"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (podcastModel) TableName() string {
	return "catalog_podcasts"
}

func (m podcastModel) toEntity() entities.Podcast {
	return entities.Podcast{
		PodcastID:       m.PodcastID,
		CategoryID:      m.CategoryID,
		Title:           m.Title,
		Slug:            m.Slug,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		PriceCents:      m.PriceCents,
		AudioObjectPath: m.AudioObjectPath,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func podcastModelFromEntity(podcast entities.Podcast) podcastModel {
	return podcastModel{
		PodcastID:       podcast.PodcastID,
		CategoryID:      podcast.CategoryID,
		Title:           podcast.Title,
		Slug:            podcast.Slug,
		Description:     podcast.Description,
		DurationMinutes: podcast.DurationMinutes,
		PriceCents:      podcast.PriceCents,
		AudioObjectPath: podcast.AudioObjectPath,
		Active:          podcast.Active,
		CreatedAt:       podcast.CreatedAt.UTC(),
		UpdatedAt:       podcast.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
