package httpadapter

import (
	"context"
	"log/slog"

	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/application/commands"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/application/queries"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	httptransport "github.com/00kaito/DevBytes/contexts/identity-access/account-service/transport/http"
)

type Handler struct {
	Register             commands.RegisterUseCase
	Login                commands.LoginUseCase
	Logout               commands.LogoutUseCase
	VerifyEmail          commands.VerifyEmailUseCase
	RequestPasswordReset commands.RequestPasswordResetUseCase
	ResetPassword        commands.ResetPasswordUseCase
	PromoteAdmin         commands.PromoteAdminUseCase
	ResolvePrincipal     queries.ResolvePrincipalUseCase
	GetProfile           queries.GetProfileUseCase
	Logger               *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.AuthResponse, error) {
	result, err := h.Register.Execute(ctx, commands.RegisterCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		User:      mapUser(result.User),
		SessionID: result.Session.SessionID,
		ExpiresAt: result.Session.ExpiresAt,
	}, nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.AuthResponse, error) {
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		User:      mapUser(result.User),
		SessionID: result.Session.SessionID,
		ExpiresAt: result.Session.ExpiresAt,
	}, nil
}

func (h Handler) LogoutHandler(ctx context.Context, sessionID string) error {
	return h.Logout.Execute(ctx, commands.LogoutCommand{SessionID: sessionID})
}

func (h Handler) VerifyEmailHandler(ctx context.Context, req httptransport.VerifyEmailRequest) error {
	return h.VerifyEmail.Execute(ctx, commands.VerifyEmailCommand{Token: req.Token})
}

func (h Handler) RequestPasswordResetHandler(ctx context.Context, req httptransport.RequestPasswordResetRequest) error {
	return h.RequestPasswordReset.Execute(ctx, commands.RequestPasswordResetCommand{Email: req.Email})
}

func (h Handler) ResetPasswordHandler(ctx context.Context, req httptransport.ResetPasswordRequest) error {
	return h.ResetPassword.Execute(ctx, commands.ResetPasswordCommand{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
}

func (h Handler) PromoteAdminHandler(ctx context.Context, actor *entities.Principal, targetUserID string, req httptransport.PromoteAdminRequest) (httptransport.ProfileResponse, error) {
	result, err := h.PromoteAdmin.Execute(ctx, commands.PromoteAdminCommand{
		Actor:        actor,
		TargetUserID: targetUserID,
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{User: mapUser(result.User)}, nil
}

func (h Handler) ResolvePrincipalHandler(ctx context.Context, sessionID string) (*entities.Principal, error) {
	return h.ResolvePrincipal.Execute(ctx, queries.ResolvePrincipalQuery{SessionID: sessionID})
}

func (h Handler) GetProfileHandler(ctx context.Context, userID string) (httptransport.ProfileResponse, error) {
	user, err := h.GetProfile.Execute(ctx, queries.GetProfileQuery{UserID: userID})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{User: mapUser(user)}, nil
}

func mapUser(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		ID:            user.UserID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		IsAdmin:       user.IsAdmin,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
