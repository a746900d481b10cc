package ports

import (
	"context"
	"time"

	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// TokenSource mints opaque single-use tokens for email verification and
// password reset links.
type TokenSource interface {
	NewToken(ctx context.Context) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) bool
}

type VerificationEmail struct {
	To        string
	FirstName string
	Token     string
}

type PasswordResetEmail struct {
	To        string
	FirstName string
	Token     string
}

// Mailer delivers account mail. Implementations are best-effort; callers log
// failures and continue.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, msg VerificationEmail) error
	SendPasswordResetEmail(ctx context.Context, msg PasswordResetEmail) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (entities.User, error)
	GetUserByResetToken(ctx context.Context, token string) (entities.User, error)
	UpdateAdminStatus(ctx context.Context, userID string, isAdmin bool, now time.Time) (entities.User, error)
	SetVerificationToken(ctx context.Context, userID string, token string, expires time.Time, now time.Time) error
	MarkEmailVerified(ctx context.Context, userID string, now time.Time) error
	SetResetToken(ctx context.Context, userID string, token string, expires time.Time, now time.Time) error
	// UpdatePassword stores the new hash and clears any reset token in the
	// same write.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, now time.Time) error
	CountAdmins(ctx context.Context) (int, error)
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, session entities.Session) error
	GetSession(ctx context.Context, sessionID string) (entities.Session, bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
