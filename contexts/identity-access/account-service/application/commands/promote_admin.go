package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type PromoteAdminCommand struct {
	Actor        *entities.Principal
	TargetUserID string
	IsAdmin      bool
}

type PromoteAdminUseCase struct {
	Users  ports.UserRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

type PromoteAdminResult struct {
	User entities.User
}

// Execute flips the admin flag on another account. Bootstrap exception: when
// no admin exists yet, any authenticated user may promote themselves.
func (uc PromoteAdminUseCase) Execute(ctx context.Context, cmd PromoteAdminCommand) (PromoteAdminResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Actor == nil {
		return PromoteAdminResult{}, domainerrors.ErrNotAuthenticated
	}
	targetID := strings.TrimSpace(cmd.TargetUserID)
	if targetID == "" {
		return PromoteAdminResult{}, domainerrors.ErrInvalidRequest
	}

	if !cmd.Actor.Admin {
		admins, err := uc.Users.CountAdmins(ctx)
		if err != nil {
			return PromoteAdminResult{}, err
		}
		if admins > 0 || targetID != cmd.Actor.UserID || !cmd.IsAdmin {
			return PromoteAdminResult{}, domainerrors.ErrForbidden
		}
	}

	now := uc.Clock.Now().UTC()
	updated, err := uc.Users.UpdateAdminStatus(ctx, targetID, cmd.IsAdmin, now)
	if err != nil {
		return PromoteAdminResult{}, err
	}

	logger.Info("admin status changed",
		"event", "admin_status_changed",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", updated.UserID,
		"is_admin", updated.IsAdmin,
	)
	return PromoteAdminResult{User: updated}, nil
}
