package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	catalogservice "github.com/00kaito/DevBytes/contexts/catalog/catalog-service"
	checkoutservice "github.com/00kaito/DevBytes/contexts/commerce/checkout-service"
	accountservice "github.com/00kaito/DevBytes/contexts/identity-access/account-service"
	accountentities "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	entitlementservice "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service"
	entitlementservices "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/services"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/00kaito/DevBytes/internal/platform/httpserver/docs"
)

// SessionCookieName carries the opaque session id. HttpOnly: scripts never
// see it.
const SessionCookieName = "devbytes_session"

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	accounts    accountservice.Module
	catalog     catalogservice.Module
	checkout    checkoutservice.Module
	entitlement entitlementservice.Module
}

func New(
	accounts accountservice.Module,
	catalog catalogservice.Module,
	checkout checkoutservice.Module,
	entitlement entitlementservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		accounts:    accounts,
		catalog:     catalog,
		checkout:    checkout,
		entitlement: entitlement,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/auth/user", s.handleGetProfile)
	s.mux.HandleFunc("POST /api/auth/verify-email", s.handleVerifyEmail)
	s.mux.HandleFunc("POST /api/auth/request-password-reset", s.handleRequestPasswordReset)
	s.mux.HandleFunc("POST /api/auth/reset-password", s.handleResetPassword)
	s.mux.HandleFunc("POST /api/admin/promote/{user_id}", s.handlePromoteAdmin)

	s.mux.HandleFunc("GET /api/categories", s.handleListCategories)
	s.mux.HandleFunc("GET /api/categories/{slug}/podcasts", s.handleListPodcastsByCategory)
	s.mux.HandleFunc("GET /api/podcasts/{slug}", s.handleGetPodcastBySlug)
	s.mux.HandleFunc("GET /api/podcasts/by-id/{id}", s.handleGetPodcastByID)
	s.mux.HandleFunc("GET /api/admin/podcasts", s.handleListAllPodcasts)
	s.mux.HandleFunc("POST /api/admin/podcasts", s.handleCreatePodcast)
	s.mux.HandleFunc("PUT /api/admin/podcasts/{id}", s.handleUpdatePodcast)
	s.mux.HandleFunc("DELETE /api/admin/podcasts/{id}", s.handleDeletePodcast)
	s.mux.HandleFunc("POST /api/admin/categories", s.handleCreateCategory)

	s.mux.HandleFunc("POST /api/create-payment-intent", s.handleCreatePaymentIntent)
	s.mux.HandleFunc("POST /api/purchases", s.handleConfirmPurchase)
	s.mux.HandleFunc("GET /api/user/purchases", s.handleListPurchases)

	s.mux.HandleFunc("GET /objects/{path...}", s.handleDownloadObject)
	s.mux.HandleFunc("GET /public-objects/{path...}", s.handleServePublicObject)
	s.mux.HandleFunc("PUT /api/admin/objects/{path...}", s.handleUploadObject)
}

// resolvePrincipal maps the session cookie to an optional principal. Missing
// or expired sessions are anonymous, never an error.
func (s *Server) resolvePrincipal(r *http.Request) (*accountentities.Principal, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil
	}
	return s.accounts.Handler.ResolvePrincipalHandler(r.Context(), cookie.Value)
}

func (s *Server) requirePrincipal(w http.ResponseWriter, r *http.Request) *accountentities.Principal {
	principal, err := s.resolvePrincipal(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return nil
	}
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "authentication required")
		return nil
	}
	return principal
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) *accountentities.Principal {
	principal := s.requirePrincipal(w, r)
	if principal == nil {
		return nil
	}
	if !principal.Admin {
		writeError(w, http.StatusForbidden, "forbidden", "admin access required")
		return nil
	}
	return principal
}

func entitlementPrincipal(principal *accountentities.Principal) *entitlementservices.Principal {
	if principal == nil {
		return nil
	}
	return &entitlementservices.Principal{
		UserID: principal.UserID,
		Admin:  principal.Admin,
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
