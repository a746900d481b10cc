package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

type ResetPasswordUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute consumes a reset token and replaces the password hash. The token is
// cleared in the same write, so a second attempt with the same token fails.
func (uc ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	token := strings.TrimSpace(cmd.Token)
	if token == "" || len(cmd.NewPassword) < 8 {
		return domainerrors.ErrInvalidRequest
	}

	user, err := uc.Users.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrTokenInvalid
		}
		return err
	}
	now := uc.Clock.Now().UTC()
	if !user.HasActiveResetToken(now) {
		return domainerrors.ErrTokenExpired
	}

	hash, err := uc.Hasher.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.Users.UpdatePassword(ctx, user.UserID, hash, now); err != nil {
		return err
	}

	logger.Info("password reset",
		"event", "password_reset",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return nil
}
