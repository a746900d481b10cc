package entities

import (
	"time"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
)

// ObjectMetadata describes one stored object under its canonical path.
type ObjectMetadata struct {
	Path        string
	ContentType string
	Size        int64
	ACL         valueobjects.ACL
	CreatedAt   time.Time
}

// DownloadRecord is the audit row written for every authorized download.
type DownloadRecord struct {
	DownloadID   string
	Path         string
	UserID       string
	DownloadedAt time.Time
}
