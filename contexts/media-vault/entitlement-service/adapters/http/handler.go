package httpadapter

import (
	"context"
	"io"
	"log/slog"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/services"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
)

type Handler struct {
	CheckAccess    queries.CheckObjectAccessUseCase
	DownloadObject commands.DownloadObjectUseCase
	UploadObject   commands.UploadObjectUseCase
	ServePublic    queries.ServePublicObjectUseCase
	Logger         *slog.Logger
}

type ObjectStream struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
}

func (h Handler) DownloadObjectHandler(ctx context.Context, principal *services.Principal, path string) (ObjectStream, error) {
	result, err := h.DownloadObject.Execute(ctx, commands.DownloadObjectCommand{
		Principal: principal,
		Path:      path,
	})
	if err != nil {
		return ObjectStream{}, err
	}
	return ObjectStream{
		Content:     result.Content,
		ContentType: result.Metadata.ContentType,
		Size:        result.Metadata.Size,
	}, nil
}

func (h Handler) ServePublicObjectHandler(ctx context.Context, path string) (ObjectStream, error) {
	result, err := h.ServePublic.Execute(ctx, path)
	if err != nil {
		return ObjectStream{}, err
	}
	return ObjectStream{
		Content:     result.Content,
		ContentType: result.Metadata.ContentType,
		Size:        result.Metadata.Size,
	}, nil
}

func (h Handler) UploadObjectHandler(ctx context.Context, principal *services.Principal, path string, contentType string, visibility string, size int64, content io.Reader) error {
	_, err := h.UploadObject.Execute(ctx, commands.UploadObjectCommand{
		Principal:   principal,
		Path:        path,
		ContentType: contentType,
		Visibility:  valueobjects.Visibility(visibility),
		Size:        size,
		Content:     content,
	})
	return err
}

func (h Handler) CheckObjectAccessHandler(ctx context.Context, principal *services.Principal, path string) error {
	return h.CheckAccess.Execute(ctx, queries.CheckObjectAccessQuery{
		Principal:  principal,
		Path:       path,
		Permission: valueobjects.PermissionRead,
	})
}
