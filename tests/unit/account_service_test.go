package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	accountservice "github.com/00kaito/DevBytes/contexts/identity-access/account-service"
	accountmemory "github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/memory"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/security"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	httptransport "github.com/00kaito/DevBytes/contexts/identity-access/account-service/transport/http"
)

func TestRegisterOpensSessionAndResolvesPrincipal(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	auth, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:     "Anna@Example.COM",
		Password:  "correct-horse",
		FirstName: "Anna",
		LastName:  "Nowak",
	})
	if err != nil {
		t.Fatalf("register should succeed: %v", err)
	}
	if auth.User.Email != "anna@example.com" {
		t.Fatalf("email should be normalized, got %q", auth.User.Email)
	}
	if auth.SessionID == "" {
		t.Fatal("register should open a session")
	}

	principal, err := module.Handler.ResolvePrincipalHandler(context.Background(), auth.SessionID)
	if err != nil {
		t.Fatalf("resolve principal: %v", err)
	}
	if principal == nil || principal.UserID != auth.User.ID {
		t.Fatalf("session should resolve to the registered user, got %+v", principal)
	}
	if principal.Admin {
		t.Fatal("fresh accounts must not be admin")
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "anna@example.com",
		Password: "short",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRegistration) {
		t.Fatalf("expected invalid registration, got %v", err)
	}

	_, err = module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "not-an-email",
		Password: "long-enough-password",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRegistration) {
		t.Fatalf("expected invalid registration, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	req := httptransport.RegisterRequest{
		Email:    "taken@example.com",
		Password: "correct-horse",
	}
	if _, err := module.Handler.RegisterHandler(context.Background(), req); err != nil {
		t.Fatalf("first register should succeed: %v", err)
	}
	_, err := module.Handler.RegisterHandler(context.Background(), req)
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestLoginCollapsesUnknownEmailAndWrongPassword(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "anna@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password should be invalid credentials, got %v", err)
	}

	_, err = module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email should be invalid credentials, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	auth, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := module.Handler.LogoutHandler(context.Background(), auth.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	principal, err := module.Handler.ResolvePrincipalHandler(context.Background(), auth.SessionID)
	if err != nil {
		t.Fatalf("resolve after logout: %v", err)
	}
	if principal != nil {
		t.Fatalf("logged-out session should be anonymous, got %+v", principal)
	}

	// Repeated logout of an unknown session is a no-op.
	if err := module.Handler.LogoutHandler(context.Background(), auth.SessionID); err != nil {
		t.Fatalf("second logout should be a no-op: %v", err)
	}
}

func TestExpiredSessionResolvesAnonymous(t *testing.T) {
	now := time.Now().UTC()
	module := accountservice.NewInMemoryModule([]entities.User{
		{
			UserID:    "user-1",
			Email:     "anna@example.com",
			FirstName: "Anna",
			CreatedAt: now.Add(-48 * time.Hour),
		},
	}, nil)

	if err := module.Store.CreateSession(context.Background(), entities.Session{
		SessionID: "session-expired",
		UserID:    "user-1",
		CreatedAt: now.Add(-48 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	principal, err := module.Handler.ResolvePrincipalHandler(context.Background(), "session-expired")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if principal != nil {
		t.Fatalf("expired session should be anonymous, got %+v", principal)
	}

	// Expired sessions are deleted on resolve.
	if _, found, _ := module.Store.GetSession(context.Background(), "session-expired"); found {
		t.Fatal("expired session should be deleted after resolution")
	}
}

type failingSessionStore struct {
	*accountmemory.Store
}

func (failingSessionStore) DeleteSession(context.Context, string) error {
	return errors.New("session table unavailable")
}

func TestExpiredSessionCleanupFailureStaysAnonymous(t *testing.T) {
	now := time.Now().UTC()
	store := accountmemory.NewStore([]entities.User{
		{
			UserID:    "user-1",
			Email:     "anna@example.com",
			FirstName: "Anna",
			CreatedAt: now.Add(-48 * time.Hour),
		},
	})
	module := accountservice.NewModule(accountservice.Dependencies{
		Users:       store,
		Sessions:    failingSessionStore{store},
		Hasher:      security.BcryptHasher{Cost: 4},
		Tokens:      security.HexTokenSource{},
		Clock:       store,
		IDGenerator: store,
	})

	if err := store.CreateSession(context.Background(), entities.Session{
		SessionID: "session-expired",
		UserID:    "user-1",
		CreatedAt: now.Add(-48 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	// A failed cleanup of the expired row is the sweeper's problem, not the
	// caller's.
	principal, err := module.Handler.ResolvePrincipalHandler(context.Background(), "session-expired")
	if err != nil {
		t.Fatalf("cleanup failure must not surface to the caller: %v", err)
	}
	if principal != nil {
		t.Fatalf("expired session should still resolve anonymous, got %+v", principal)
	}
}

func TestVerifyEmailTokenIsSingleUse(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	auth, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := module.Store.GetUserByEmail(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("read seeded user: %v", err)
	}
	if user.VerificationToken == "" {
		t.Fatal("registration should store a verification token")
	}

	if err := module.Handler.VerifyEmailHandler(context.Background(), httptransport.VerifyEmailRequest{
		Token: user.VerificationToken,
	}); err != nil {
		t.Fatalf("verify email: %v", err)
	}

	profile, err := module.Handler.GetProfileHandler(context.Background(), auth.User.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !profile.User.EmailVerified {
		t.Fatal("email should be verified")
	}

	err = module.Handler.VerifyEmailHandler(context.Background(), httptransport.VerifyEmailRequest{
		Token: user.VerificationToken,
	})
	if !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("token replay should fail, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "anna@example.com",
		Password: "old-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown addresses are indistinguishable from known ones.
	if err := module.Handler.RequestPasswordResetHandler(context.Background(), httptransport.RequestPasswordResetRequest{
		Email: "nobody@example.com",
	}); err != nil {
		t.Fatalf("reset request for unknown email should not leak: %v", err)
	}

	if err := module.Handler.RequestPasswordResetHandler(context.Background(), httptransport.RequestPasswordResetRequest{
		Email: "anna@example.com",
	}); err != nil {
		t.Fatalf("reset request: %v", err)
	}

	user, err := module.Store.GetUserByEmail(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if user.ResetToken == "" {
		t.Fatal("reset request should store a token")
	}

	if err := module.Handler.ResetPasswordHandler(context.Background(), httptransport.ResetPasswordRequest{
		Token:       user.ResetToken,
		NewPassword: "new-password",
	}); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	// Token is cleared by the password write.
	err = module.Handler.ResetPasswordHandler(context.Background(), httptransport.ResetPasswordRequest{
		Token:       user.ResetToken,
		NewPassword: "another-password",
	})
	if !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("token replay should fail, got %v", err)
	}

	if _, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "anna@example.com",
		Password: "old-password",
	}); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "anna@example.com",
		Password: "new-password",
	}); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestPromoteAdminBootstrapAndRevocation(t *testing.T) {
	module := accountservice.NewInMemoryModule(nil, nil)

	auth, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "founder@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register founder: %v", err)
	}
	other, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Email:    "member@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register member: %v", err)
	}

	founder := &entities.Principal{UserID: auth.User.ID}

	// A non-admin cannot grant admin to someone else, even with no admins yet.
	_, err = module.Handler.PromoteAdminHandler(context.Background(), founder, other.User.ID, httptransport.PromoteAdminRequest{IsAdmin: true})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Self-promotion is allowed only while no admin exists.
	promoted, err := module.Handler.PromoteAdminHandler(context.Background(), founder, auth.User.ID, httptransport.PromoteAdminRequest{IsAdmin: true})
	if err != nil {
		t.Fatalf("bootstrap self-promotion should succeed: %v", err)
	}
	if !promoted.User.IsAdmin {
		t.Fatal("founder should now be admin")
	}

	// With an admin present, the bootstrap door is closed.
	member := &entities.Principal{UserID: other.User.ID}
	_, err = module.Handler.PromoteAdminHandler(context.Background(), member, other.User.ID, httptransport.PromoteAdminRequest{IsAdmin: true})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden after bootstrap, got %v", err)
	}

	// Admins can grant and revoke.
	admin := &entities.Principal{UserID: auth.User.ID, Admin: true}
	if _, err := module.Handler.PromoteAdminHandler(context.Background(), admin, other.User.ID, httptransport.PromoteAdminRequest{IsAdmin: true}); err != nil {
		t.Fatalf("admin grant: %v", err)
	}
	demoted, err := module.Handler.PromoteAdminHandler(context.Background(), admin, other.User.ID, httptransport.PromoteAdminRequest{IsAdmin: false})
	if err != nil {
		t.Fatalf("admin revoke: %v", err)
	}
	if demoted.User.IsAdmin {
		t.Fatal("revocation should clear the admin flag")
	}

	// Revocation is visible on the next principal resolution.
	login, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "member@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login member: %v", err)
	}
	principal, err := module.Handler.ResolvePrincipalHandler(context.Background(), login.SessionID)
	if err != nil {
		t.Fatalf("resolve member: %v", err)
	}
	if principal == nil || principal.Admin {
		t.Fatalf("revoked member should resolve without admin, got %+v", principal)
	}
}

func TestSessionSweeperRemovesExpiredState(t *testing.T) {
	now := time.Now().UTC()
	expired := now.Add(-time.Hour)
	module := accountservice.NewInMemoryModule([]entities.User{
		{
			UserID:              "user-1",
			Email:               "anna@example.com",
			VerificationToken:   "stale-token",
			VerificationExpires: &expired,
			CreatedAt:           now.Add(-48 * time.Hour),
		},
	}, nil)

	if err := module.Store.CreateSession(context.Background(), entities.Session{
		SessionID: "session-stale",
		UserID:    "user-1",
		CreatedAt: now.Add(-48 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if err := module.Sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweeper: %v", err)
	}

	if _, found, _ := module.Store.GetSession(context.Background(), "session-stale"); found {
		t.Fatal("sweeper should delete expired sessions")
	}
	user, err := module.Store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if user.VerificationToken != "" {
		t.Fatal("sweeper should clear expired verification tokens")
	}
}
