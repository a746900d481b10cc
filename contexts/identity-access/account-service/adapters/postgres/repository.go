package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return r.getUserBy(ctx, "user_id = ?", strings.TrimSpace(userID))
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.getUserBy(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) GetUserByVerificationToken(ctx context.Context, token string) (entities.User, error) {
	if strings.TrimSpace(token) == "" {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return r.getUserBy(ctx, "verification_token = ?", token)
}

func (r *Repository) GetUserByResetToken(ctx context.Context, token string) (entities.User, error) {
	if strings.TrimSpace(token) == "" {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return r.getUserBy(ctx, "reset_token = ?", token)
}

func (r *Repository) getUserBy(ctx context.Context, query string, arg any) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateAdminStatus(ctx context.Context, userID string, isAdmin bool, now time.Time) (entities.User, error) {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Updates(map[string]any{
			"is_admin":   isAdmin,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return entities.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return r.GetUser(ctx, userID)
}

func (r *Repository) SetVerificationToken(ctx context.Context, userID string, token string, expires time.Time, now time.Time) error {
	return r.updateUser(ctx, userID, map[string]any{
		"verification_token":   token,
		"verification_expires": expires.UTC(),
		"updated_at":           now.UTC(),
	})
}

func (r *Repository) MarkEmailVerified(ctx context.Context, userID string, now time.Time) error {
	return r.updateUser(ctx, userID, map[string]any{
		"email_verified":       true,
		"verification_token":   nil,
		"verification_expires": nil,
		"updated_at":           now.UTC(),
	})
}

func (r *Repository) SetResetToken(ctx context.Context, userID string, token string, expires time.Time, now time.Time) error {
	return r.updateUser(ctx, userID, map[string]any{
		"reset_token":   token,
		"reset_expires": expires.UTC(),
		"updated_at":    now.UTC(),
	})
}

func (r *Repository) UpdatePassword(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	return r.updateUser(ctx, userID, map[string]any{
		"password_hash": passwordHash,
		"reset_token":   nil,
		"reset_expires": nil,
		"updated_at":    now.UTC(),
	})
}

func (r *Repository) updateUser(ctx context.Context, userID string, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("is_admin = ?", true).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	verification := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("verification_token IS NOT NULL AND verification_expires <= ?", now.UTC()).
		Updates(map[string]any{
			"verification_token":   nil,
			"verification_expires": nil,
			"updated_at":           now.UTC(),
		})
	if verification.Error != nil {
		return 0, verification.Error
	}
	reset := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("reset_token IS NOT NULL AND reset_expires <= ?", now.UTC()).
		Updates(map[string]any{
			"reset_token":   nil,
			"reset_expires": nil,
			"updated_at":    now.UTC(),
		})
	if reset.Error != nil {
		return 0, reset.Error
	}
	return int(verification.RowsAffected + reset.RowsAffected), nil
}

func (r *Repository) CreateSession(ctx context.Context, session entities.Session) error {
	row := sessionModelFromEntity(session)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (entities.Session, bool, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Session{}, false, nil
		}
		return entities.Session{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		Delete(&sessionModel{}).
		Error
}

func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&sessionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

type userModel struct {
	UserID              string     `gorm:"column:user_id;primaryKey"`
	Email               string     `gorm:"column:email;uniqueIndex"`
	PasswordHash        string     `gorm:"column:password_hash"`
	FirstName           string     `gorm:"column:first_name"`
	LastName            string     `gorm:"column:last_name"`
	IsAdmin             bool       `gorm:"column:is_admin"`
	EmailVerified       bool       `gorm:"column:email_verified"`
	VerificationToken   *string    `gorm:"column:verification_token"`
	VerificationExpires *time.Time `gorm:"column:verification_expires"`
	ResetToken          *string    `gorm:"column:reset_token"`
	ResetExpires        *time.Time `gorm:"column:reset_expires"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "account_users"
}

func (m userModel) toEntity() entities.User {
	user := entities.User{
		UserID:              m.UserID,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		IsAdmin:             m.IsAdmin,
		EmailVerified:       m.EmailVerified,
		VerificationExpires: m.VerificationExpires,
		ResetExpires:        m.ResetExpires,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.VerificationToken != nil {
		user.VerificationToken = *m.VerificationToken
	}
	if m.ResetToken != nil {
		user.ResetToken = *m.ResetToken
	}
	return user
}

func userModelFromEntity(user entities.User) userModel {
	row := userModel{
		UserID:              user.UserID,
		Email:               strings.ToLower(user.Email),
		PasswordHash:        user.PasswordHash,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		IsAdmin:             user.IsAdmin,
		EmailVerified:       user.EmailVerified,
		VerificationExpires: user.VerificationExpires,
		ResetExpires:        user.ResetExpires,
		CreatedAt:           user.CreatedAt.UTC(),
		UpdatedAt:           user.UpdatedAt.UTC(),
	}
	if user.VerificationToken != "" {
		token := user.VerificationToken
		row.VerificationToken = &token
	}
	if user.ResetToken != "" {
		token := user.ResetToken
		row.ResetToken = &token
	}
	return row
}

type sessionModel struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
}

func (sessionModel) TableName() string {
	return "account_sessions"
}

func (m sessionModel) toEntity() entities.Session {
	return entities.Session{
		SessionID: m.SessionID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

func sessionModelFromEntity(session entities.Session) sessionModel {
	return sessionModel{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt.UTC(),
		ExpiresAt: session.ExpiresAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
