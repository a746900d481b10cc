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

type VerifyEmailCommand struct {
	Token string
}

type VerifyEmailUseCase struct {
	Users  ports.UserRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute consumes a verification token. The token is single-use: marking the
// email verified clears it.
func (uc VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return domainerrors.ErrTokenInvalid
	}

	user, err := uc.Users.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrTokenInvalid
		}
		return err
	}
	now := uc.Clock.Now().UTC()
	if user.VerificationExpires == nil || !now.Before(user.VerificationExpires.UTC()) {
		return domainerrors.ErrTokenExpired
	}
	if err := uc.Users.MarkEmailVerified(ctx, user.UserID, now); err != nil {
		return err
	}

	logger.Info("email verified",
		"event", "email_verified",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return nil
}
