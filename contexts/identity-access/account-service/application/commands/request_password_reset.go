package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

const resetTokenTTL = time.Hour

type RequestPasswordResetCommand struct {
	Email string
}

type RequestPasswordResetUseCase struct {
	Users  ports.UserRepository
	Tokens ports.TokenSource
	Mailer ports.Mailer
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute issues a one-hour reset token and emails it. An unknown email
// returns success without sending anything so the endpoint does not leak
// which addresses exist.
func (uc RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return domainerrors.ErrInvalidRequest
	}

	user, err := uc.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	now := uc.Clock.Now().UTC()
	token, err := uc.Tokens.NewToken(ctx)
	if err != nil {
		return err
	}
	if err := uc.Users.SetResetToken(ctx, user.UserID, token, now.Add(resetTokenTTL), now); err != nil {
		return err
	}

	if uc.Mailer != nil {
		if err := uc.Mailer.SendPasswordResetEmail(ctx, ports.PasswordResetEmail{
			To:        user.Email,
			FirstName: user.FirstName,
			Token:     token,
		}); err != nil {
			logger.Warn("reset email failed",
				"event", "reset_email_failed",
				"module", "identity-access/account-service",
				"layer", "application",
				"user_id", user.UserID,
				"error", err,
			)
		}
	}

	logger.Info("password reset requested",
		"event", "password_reset_requested",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return nil
}
