package commands

import (
	"context"
	"io"
	"log/slog"

	application "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/services"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
)

type DownloadObjectCommand struct {
	Principal *services.Principal
	Path      string
}

type DownloadObjectUseCase struct {
	Objects     ports.ObjectStore
	Auditor     ports.DownloadAuditor
	CheckAccess queries.CheckObjectAccessUseCase
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type DownloadObjectResult struct {
	Content  io.ReadCloser
	Metadata entities.ObjectMetadata
}

// Execute streams an object after the full access check passes. Every
// authorized download leaves an audit row.
func (uc DownloadObjectUseCase) Execute(ctx context.Context, cmd DownloadObjectCommand) (DownloadObjectResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	objectPath, err := queries.NormalizePath(cmd.Path)
	if err != nil {
		return DownloadObjectResult{}, domainerrors.ErrObjectNotFound
	}

	if err := uc.CheckAccess.Execute(ctx, queries.CheckObjectAccessQuery{
		Principal:  cmd.Principal,
		Path:       objectPath,
		Permission: valueobjects.PermissionRead,
	}); err != nil {
		return DownloadObjectResult{}, err
	}

	metadata, err := uc.Objects.GetMetadata(ctx, objectPath)
	if err != nil {
		return DownloadObjectResult{}, err
	}
	content, err := uc.Objects.OpenObject(ctx, objectPath)
	if err != nil {
		return DownloadObjectResult{}, err
	}

	if uc.Auditor != nil {
		userID := ""
		if cmd.Principal != nil {
			userID = cmd.Principal.UserID
		}
		downloadID, err := uc.IDGenerator.NewID(ctx)
		if err == nil {
			err = uc.Auditor.RecordDownload(ctx, entities.DownloadRecord{
				DownloadID:   downloadID,
				Path:         objectPath,
				UserID:       userID,
				DownloadedAt: uc.Clock.Now().UTC(),
			})
		}
		if err != nil {
			logger.Warn("download audit failed",
				"event", "download_audit_failed",
				"module", "media-vault/entitlement-service",
				"layer", "application",
				"path", objectPath,
				"error", err,
			)
		}
	}

	logger.Info("object downloaded",
		"event", "object_downloaded",
		"module", "media-vault/entitlement-service",
		"layer", "application",
		"path", objectPath,
	)
	return DownloadObjectResult{Content: content, Metadata: metadata}, nil
}
