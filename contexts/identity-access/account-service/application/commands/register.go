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

const verificationTokenTTL = 24 * time.Hour

type RegisterCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type RegisterUseCase struct {
	Users       ports.UserRepository
	Sessions    ports.SessionStore
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenSource
	Mailer      ports.Mailer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	SessionTTL  time.Duration
	Logger      *slog.Logger
}

type RegisterResult struct {
	User    entities.User
	Session entities.Session
}

// Execute creates the account, stores a pending verification token, opens a
// login session, and sends the verification email best-effort.
func (uc RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (RegisterResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || !strings.Contains(email, "@") || len(cmd.Password) < 8 {
		return RegisterResult{}, domainerrors.ErrInvalidRegistration
	}

	now := uc.Clock.Now().UTC()
	hash, err := uc.Hasher.Hash(cmd.Password)
	if err != nil {
		return RegisterResult{}, err
	}
	userID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	user, err := entities.NewUser(userID, email, hash, cmd.FirstName, cmd.LastName, now)
	if err != nil {
		return RegisterResult{}, err
	}
	verificationToken, err := uc.Tokens.NewToken(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	verificationExpires := now.Add(verificationTokenTTL)
	user.VerificationToken = verificationToken
	user.VerificationExpires = &verificationExpires

	created, err := uc.Users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			return RegisterResult{}, domainerrors.ErrEmailTaken
		}
		return RegisterResult{}, err
	}

	session, err := openSession(ctx, uc.Sessions, uc.IDGenerator, created.UserID, now, uc.SessionTTL)
	if err != nil {
		return RegisterResult{}, err
	}

	if uc.Mailer != nil {
		if err := uc.Mailer.SendVerificationEmail(ctx, ports.VerificationEmail{
			To:        created.Email,
			FirstName: created.FirstName,
			Token:     verificationToken,
		}); err != nil {
			logger.Warn("verification email failed",
				"event", "verification_email_failed",
				"module", "identity-access/account-service",
				"layer", "application",
				"user_id", created.UserID,
				"error", err,
			)
		}
	}

	logger.Info("user registered",
		"event", "user_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", created.UserID,
	)
	return RegisterResult{User: created, Session: session}, nil
}

func openSession(ctx context.Context, sessions ports.SessionStore, ids ports.IDGenerator, userID string, now time.Time, ttl time.Duration) (entities.Session, error) {
	sessionID, err := ids.NewID(ctx)
	if err != nil {
		return entities.Session{}, err
	}
	session := entities.Session{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := sessions.CreateSession(ctx, session); err != nil {
		return entities.Session{}, err
	}
	return session, nil
}
