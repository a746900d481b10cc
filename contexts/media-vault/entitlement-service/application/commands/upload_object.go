package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/services"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
)

type UploadObjectCommand struct {
	Principal   *services.Principal
	Path        string
	ContentType string
	Visibility  valueobjects.Visibility
	Size        int64
	Content     io.Reader
}

type UploadObjectUseCase struct {
	Objects ports.ObjectStore
	Clock   ports.Clock
	Logger  *slog.Logger
}

type UploadObjectResult struct {
	Metadata entities.ObjectMetadata
}

// Execute stores an object with its ACL. Upload is admin-only; the uploader
// becomes the ACL owner and the ACL is fixed at write time.
func (uc UploadObjectUseCase) Execute(ctx context.Context, cmd UploadObjectCommand) (UploadObjectResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Principal == nil {
		return UploadObjectResult{}, domainerrors.ErrNotAuthenticated
	}
	if !cmd.Principal.Admin {
		return UploadObjectResult{}, domainerrors.ErrNotAuthorized
	}
	objectPath, err := queries.NormalizePath(cmd.Path)
	if err != nil || cmd.Content == nil {
		return UploadObjectResult{}, domainerrors.ErrInvalidInput
	}

	visibility := cmd.Visibility
	if visibility != valueobjects.VisibilityPublic {
		visibility = valueobjects.VisibilityPrivate
	}
	contentType := strings.TrimSpace(cmd.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	metadata := entities.ObjectMetadata{
		Path:        objectPath,
		ContentType: contentType,
		Size:        cmd.Size,
		ACL: valueobjects.ACL{
			Owner:      cmd.Principal.UserID,
			Visibility: visibility,
		},
		CreatedAt: uc.Clock.Now().UTC(),
	}
	if err := uc.Objects.WriteObject(ctx, metadata, cmd.Content); err != nil {
		return UploadObjectResult{}, err
	}

	logger.Info("object uploaded",
		"event", "object_uploaded",
		"module", "media-vault/entitlement-service",
		"layer", "application",
		"path", objectPath,
		"visibility", string(visibility),
	)
	return UploadObjectResult{Metadata: metadata}, nil
}
