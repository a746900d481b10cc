package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type LogoutCommand struct {
	SessionID string
}

type LogoutUseCase struct {
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// Execute revokes the session. Logging out an unknown or already-expired
// session is a no-op, not an error.
func (uc LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	sessionID := strings.TrimSpace(cmd.SessionID)
	if sessionID == "" {
		return nil
	}
	if err := uc.Sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	logger.Info("session revoked",
		"event", "session_revoked",
		"module", "identity-access/account-service",
		"layer", "application",
	)
	return nil
}
