package entities

import (
	"strings"
	"time"

	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
)

// User is the stored account identity. Verification and reset tokens are
// single-use: they are cleared the moment they are consumed.
type User struct {
	UserID       string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsAdmin      bool

	EmailVerified       bool
	VerificationToken   string
	VerificationExpires *time.Time
	ResetToken          string
	ResetExpires        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(userID, email, passwordHash, firstName, lastName string, now time.Time) (User, error) {
	if strings.TrimSpace(userID) == "" ||
		strings.TrimSpace(email) == "" ||
		strings.TrimSpace(passwordHash) == "" {
		return User{}, domainerrors.ErrInvalidRegistration
	}
	return User{
		UserID:       userID,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// HasActiveResetToken reports whether an unexpired reset token is pending.
func (u User) HasActiveResetToken(now time.Time) bool {
	return u.ResetToken != "" && u.ResetExpires != nil && now.UTC().Before(u.ResetExpires.UTC())
}
