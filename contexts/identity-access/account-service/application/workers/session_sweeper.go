package workers

import (
	"context"
	"log/slog"
	"time"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

// SessionSweeper removes expired sessions and stale verification/reset
// tokens so the stores do not grow without bound.
type SessionSweeper struct {
	Sessions ports.SessionStore
	Users    ports.UserRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (j SessionSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	sessions, err := j.Sessions.DeleteExpiredSessions(ctx, now)
	if err != nil {
		logger.Error("session sweep failed",
			"event", "session_sweep_failed",
			"module", "identity-access/account-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	tokens := 0
	if j.Users != nil {
		tokens, err = j.Users.DeleteExpiredTokens(ctx, now)
		if err != nil {
			logger.Error("token sweep failed",
				"event", "token_sweep_failed",
				"module", "identity-access/account-service",
				"layer", "worker",
				"error", err.Error(),
			)
			return err
		}
	}
	if sessions > 0 || tokens > 0 {
		logger.Info("session sweep completed",
			"event", "session_sweep_completed",
			"module", "identity-access/account-service",
			"layer", "worker",
			"sessions_removed", sessions,
			"tokens_cleared", tokens,
		)
	}
	return nil
}
