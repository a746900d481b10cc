package queries

import (
	"context"
	"errors"
	"path"
	"strings"

	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/services"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
)

type CheckObjectAccessQuery struct {
	Principal  *services.Principal
	Path       string
	Permission valueobjects.Permission
}

type CheckObjectAccessUseCase struct {
	Objects   ports.ObjectStore
	Podcasts  ports.PodcastResolver
	Purchases ports.PurchaseReader
}

// Execute is the full access decision for one object. Default deny: the only
// nil returns are an explicit ACL allow or a verified completed purchase. A
// missing object and an object without a usable policy are both
// ErrObjectNotFound, so probing cannot distinguish them.
func (uc CheckObjectAccessUseCase) Execute(ctx context.Context, query CheckObjectAccessQuery) error {
	objectPath, err := NormalizePath(query.Path)
	if err != nil {
		return domainerrors.ErrObjectNotFound
	}

	metadata, err := uc.Objects.GetMetadata(ctx, objectPath)
	if err != nil {
		return err
	}

	switch services.Evaluate(metadata.ACL, query.Principal, query.Permission) {
	case services.DecisionAllow:
		return nil
	case services.DecisionNeedsAuth:
		return domainerrors.ErrNotAuthenticated
	case services.DecisionNeedsEntitlement:
		return uc.checkEntitlement(ctx, query.Principal, objectPath)
	default:
		return domainerrors.ErrNotAuthorized
	}
}

func (uc CheckObjectAccessUseCase) checkEntitlement(ctx context.Context, principal *services.Principal, objectPath string) error {
	if principal == nil {
		return domainerrors.ErrNotAuthenticated
	}
	if uc.Podcasts == nil || uc.Purchases == nil {
		return domainerrors.ErrNotAuthorized
	}

	podcastID, err := uc.Podcasts.GetPodcastIDByAudioPath(ctx, objectPath)
	if err != nil {
		// Object is not catalog content; nothing to derive access from.
		return domainerrors.ErrNotAuthorized
	}
	owned, err := uc.Purchases.HasCompletedPurchase(ctx, principal.UserID, podcastID)
	if err != nil {
		return err
	}
	if !owned {
		return domainerrors.ErrNotAuthorized
	}
	return nil
}

// NormalizePath canonicalizes an object path: no leading slash, no empty or
// traversal segments.
func NormalizePath(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "", errors.New("empty path")
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("invalid path")
	}
	return cleaned, nil
}
