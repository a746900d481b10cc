package queries

import (
	"context"
	"strings"

	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

type GetProfileQuery struct {
	UserID string
}

type GetProfileUseCase struct {
	Users ports.UserRepository
}

func (uc GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (entities.User, error) {
	userID := strings.TrimSpace(query.UserID)
	if userID == "" {
		return entities.User{}, domainerrors.ErrNotAuthenticated
	}
	return uc.Users.GetUser(ctx, userID)
}
