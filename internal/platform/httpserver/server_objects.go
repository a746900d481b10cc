package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	httpadapter "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/adapters/http"
	entitlementerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
)

func (s *Server) handleDownloadObject(w http.ResponseWriter, r *http.Request) {
	principal, err := s.resolvePrincipal(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	stream, err := s.entitlement.Handler.DownloadObjectHandler(r.Context(), entitlementPrincipal(principal), r.PathValue("path"))
	if err != nil {
		writeEntitlementDomainError(w, err)
		return
	}
	serveStream(w, stream)
}

func (s *Server) handleServePublicObject(w http.ResponseWriter, r *http.Request) {
	stream, err := s.entitlement.Handler.ServePublicObjectHandler(r.Context(), r.PathValue("path"))
	if err != nil {
		writeEntitlementDomainError(w, err)
		return
	}
	serveStream(w, stream)
}

func (s *Server) handleUploadObject(w http.ResponseWriter, r *http.Request) {
	principal, err := s.resolvePrincipal(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	defer r.Body.Close()
	if err := s.entitlement.Handler.UploadObjectHandler(
		r.Context(),
		entitlementPrincipal(principal),
		r.PathValue("path"),
		r.Header.Get("Content-Type"),
		r.URL.Query().Get("visibility"),
		r.ContentLength,
		r.Body,
	); err != nil {
		writeEntitlementDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func serveStream(w http.ResponseWriter, stream httpadapter.ObjectStream) {
	defer stream.Content.Close()
	if stream.ContentType != "" {
		w.Header().Set("Content-Type", stream.ContentType)
	}
	if stream.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(stream.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, stream.Content)
}

func writeEntitlementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entitlementerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, entitlementerrors.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "not_authenticated", err.Error())
	case errors.Is(err, entitlementerrors.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, entitlementerrors.ErrObjectNotFound):
		writeError(w, http.StatusNotFound, "object_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
