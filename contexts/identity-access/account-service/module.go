package accountservice

import (
	"log/slog"
	"time"

	httpadapter "github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/http"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/memory"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/security"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/application/workers"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Sweeper workers.SessionSweeper
	Store   *memory.Store
}

type Dependencies struct {
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

func NewModule(deps Dependencies) Module {
	sessionTTL := deps.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}

	register := commands.RegisterUseCase{
		Users:       deps.Users,
		Sessions:    deps.Sessions,
		Hasher:      deps.Hasher,
		Tokens:      deps.Tokens,
		Mailer:      deps.Mailer,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		SessionTTL:  sessionTTL,
		Logger:      deps.Logger,
	}
	login := commands.LoginUseCase{
		Users:       deps.Users,
		Sessions:    deps.Sessions,
		Hasher:      deps.Hasher,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		SessionTTL:  sessionTTL,
		Logger:      deps.Logger,
	}
	logout := commands.LogoutUseCase{
		Sessions: deps.Sessions,
		Logger:   deps.Logger,
	}
	verifyEmail := commands.VerifyEmailUseCase{
		Users:  deps.Users,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	requestPasswordReset := commands.RequestPasswordResetUseCase{
		Users:  deps.Users,
		Tokens: deps.Tokens,
		Mailer: deps.Mailer,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	resetPassword := commands.ResetPasswordUseCase{
		Users:  deps.Users,
		Hasher: deps.Hasher,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	promoteAdmin := commands.PromoteAdminUseCase{
		Users:  deps.Users,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	resolvePrincipal := queries.ResolvePrincipalUseCase{
		Users:    deps.Users,
		Sessions: deps.Sessions,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	getProfile := queries.GetProfileUseCase{
		Users: deps.Users,
	}

	return Module{
		Handler: httpadapter.Handler{
			Register:             register,
			Login:                login,
			Logout:               logout,
			VerifyEmail:          verifyEmail,
			RequestPasswordReset: requestPasswordReset,
			ResetPassword:        resetPassword,
			PromoteAdmin:         promoteAdmin,
			ResolvePrincipal:     resolvePrincipal,
			GetProfile:           getProfile,
			Logger:               deps.Logger,
		},
		Sweeper: workers.SessionSweeper{
			Sessions: deps.Sessions,
			Users:    deps.Users,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.User, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Users:       store,
		Sessions:    store,
		Hasher:      security.BcryptHasher{Cost: 4},
		Tokens:      security.HexTokenSource{},
		Clock:       store,
		IDGenerator: store,
		SessionTTL:  7 * 24 * time.Hour,
		Logger:      logger,
	})
	module.Store = store
	return module
}
