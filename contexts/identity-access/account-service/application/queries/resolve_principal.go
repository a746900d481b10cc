package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type ResolvePrincipalQuery struct {
	SessionID string
}

type ResolvePrincipalUseCase struct {
	Users    ports.UserRepository
	Sessions ports.SessionStore
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute maps a session id to a principal. A missing or expired session
// yields a nil principal with no error: anonymous is a valid outcome here,
// and the caller decides whether the route demands authentication. The admin
// flag is re-read from the user row, never trusted from the session.
func (uc ResolvePrincipalUseCase) Execute(ctx context.Context, query ResolvePrincipalQuery) (*entities.Principal, error) {
	sessionID := strings.TrimSpace(query.SessionID)
	if sessionID == "" {
		return nil, nil
	}

	session, found, err := uc.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	now := uc.Clock.Now().UTC()
	if session.Expired(now) {
		// Cleanup is best effort; the sweeper will retry. The request is
		// still anonymous either way.
		if err := uc.Sessions.DeleteSession(ctx, session.SessionID); err != nil {
			application.ResolveLogger(uc.Logger).Warn("expired session cleanup failed",
				"event", "session_cleanup_failed",
				"module", "identity-access/account-service",
				"layer", "application",
				"error", err.Error(),
			)
		}
		return nil, nil
	}

	user, err := uc.Users.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Principal{UserID: user.UserID, Admin: user.IsAdmin}, nil
}
