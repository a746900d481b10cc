package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
)

type downloadModel struct {
	DownloadID   string    `gorm:"column:download_id;primaryKey"`
	Path         string    `gorm:"column:path;index"`
	UserID       string    `gorm:"column:user_id;index"`
	DownloadedAt time.Time `gorm:"column:downloaded_at"`
}

func (downloadModel) TableName() string { return "entitlement_downloads" }

// Auditor keeps the download audit trail in Postgres. Object content stays in
// the object store; only the access record lands here.
type Auditor struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAuditor(db *gorm.DB, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{db: db, logger: logger}
}

func (a *Auditor) RecordDownload(ctx context.Context, record entities.DownloadRecord) error {
	model := downloadModel{
		DownloadID:   record.DownloadID,
		Path:         record.Path,
		UserID:       record.UserID,
		DownloadedAt: record.DownloadedAt.UTC(),
	}
	return a.db.WithContext(ctx).Create(&model).Error
}
