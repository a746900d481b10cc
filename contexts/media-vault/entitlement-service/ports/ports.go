package ports

import (
	"context"
	"io"
	"time"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ObjectStore holds object content and the metadata document (including the
// ACL) under the canonical path.
type ObjectStore interface {
	GetMetadata(ctx context.Context, path string) (entities.ObjectMetadata, error)
	WriteObject(ctx context.Context, metadata entities.ObjectMetadata, content io.Reader) error
	OpenObject(ctx context.Context, path string) (io.ReadCloser, error)
}

type DownloadAuditor interface {
	RecordDownload(ctx context.Context, record entities.DownloadRecord) error
}

// PodcastResolver maps an object path to the podcast that sells it.
type PodcastResolver interface {
	GetPodcastIDByAudioPath(ctx context.Context, path string) (string, error)
}

// PurchaseReader is the shared purchase predicate, satisfied by the checkout
// purchase repository.
type PurchaseReader interface {
	HasCompletedPurchase(ctx context.Context, userID string, podcastID string) (bool, error)
}

type PodcastResolverFunc func(ctx context.Context, path string) (string, error)

func (f PodcastResolverFunc) GetPodcastIDByAudioPath(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}
