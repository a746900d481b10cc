package queries

import (
	"context"
	"io"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
)

type ServePublicObjectUseCase struct {
	Objects ports.ObjectStore
}

type PublicObject struct {
	Content  io.ReadCloser
	Metadata entities.ObjectMetadata
}

// Execute serves public-visibility objects without any identity. A private
// object behind this path reads as absent.
func (uc ServePublicObjectUseCase) Execute(ctx context.Context, rawPath string) (PublicObject, error) {
	objectPath, err := NormalizePath(rawPath)
	if err != nil {
		return PublicObject{}, domainerrors.ErrObjectNotFound
	}
	metadata, err := uc.Objects.GetMetadata(ctx, objectPath)
	if err != nil {
		return PublicObject{}, err
	}
	if !metadata.ACL.Public() {
		return PublicObject{}, domainerrors.ErrObjectNotFound
	}
	content, err := uc.Objects.OpenObject(ctx, objectPath)
	if err != nil {
		return PublicObject{}, err
	}
	return PublicObject{Content: content, Metadata: metadata}, nil
}
