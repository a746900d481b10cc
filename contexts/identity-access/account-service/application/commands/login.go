package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	Users       ports.UserRepository
	Sessions    ports.SessionStore
	Hasher      ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	SessionTTL  time.Duration
	Logger      *slog.Logger
}

type LoginResult struct {
	User    entities.User
	Session entities.Session
}

// Execute verifies the credentials and opens a fresh session. Unknown email
// and wrong password collapse into the same error so callers cannot probe
// which addresses are registered.
func (uc LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	user, err := uc.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !uc.Hasher.Verify(cmd.Password, user.PasswordHash) {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	now := uc.Clock.Now().UTC()
	session, err := openSession(ctx, uc.Sessions, uc.IDGenerator, user.UserID, now, uc.SessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	logger.Info("user logged in",
		"event", "user_logged_in",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return LoginResult{User: user, Session: session}, nil
}
