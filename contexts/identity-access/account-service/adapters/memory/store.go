package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/identity-access/account-service/domain/errors"
)

type Store struct {
	mu sync.RWMutex

	users    map[string]entities.User
	byEmail  map[string]string
	sessions map[string]entities.Session
}

func NewStore(seed []entities.User) *Store {
	users := make(map[string]entities.User, len(seed))
	byEmail := make(map[string]string, len(seed))
	for _, item := range seed {
		users[item.UserID] = item
		byEmail[strings.ToLower(item.Email)] = item.UserID
	}
	return &Store{
		users:    users,
		byEmail:  byEmail,
		sessions: make(map[string]entities.Session),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return entities.User{}, domainerrors.ErrEmailTaken
	}
	if _, exists := s.users[user.UserID]; exists {
		return entities.User{}, domainerrors.ErrEmailTaken
	}
	s.users[user.UserID] = user
	s.byEmail[email] = user.UserID
	return user, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return item, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.users[userID], nil
}

func (s *Store) GetUserByVerificationToken(_ context.Context, token string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.VerificationToken != "" && user.VerificationToken == token {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) GetUserByResetToken(_ context.Context, token string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ResetToken != "" && user.ResetToken == token {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) UpdateAdminStatus(_ context.Context, userID string, isAdmin bool, now time.Time) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = now.UTC()
	s.users[user.UserID] = user
	return user, nil
}

func (s *Store) SetVerificationToken(_ context.Context, userID string, token string, expires time.Time, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return domainerrors.ErrUserNotFound
	}
	expiresUTC := expires.UTC()
	user.VerificationToken = token
	user.VerificationExpires = &expiresUTC
	user.UpdatedAt = now.UTC()
	s.users[user.UserID] = user
	return nil
}

func (s *Store) MarkEmailVerified(_ context.Context, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return domainerrors.ErrUserNotFound
	}
	user.EmailVerified = true
	user.VerificationToken = ""
	user.VerificationExpires = nil
	user.UpdatedAt = now.UTC()
	s.users[user.UserID] = user
	return nil
}

func (s *Store) SetResetToken(_ context.Context, userID string, token string, expires time.Time, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return domainerrors.ErrUserNotFound
	}
	expiresUTC := expires.UTC()
	user.ResetToken = token
	user.ResetExpires = &expiresUTC
	user.UpdatedAt = now.UTC()
	s.users[user.UserID] = user
	return nil
}

func (s *Store) UpdatePassword(_ context.Context, userID string, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return domainerrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetExpires = nil
	user.UpdatedAt = now.UTC()
	s.users[user.UserID] = user
	return nil
}

func (s *Store) CountAdmins(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.IsAdmin {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteExpiredTokens(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := 0
	for id, user := range s.users {
		changed := false
		if user.VerificationToken != "" && user.VerificationExpires != nil && !now.UTC().Before(user.VerificationExpires.UTC()) {
			user.VerificationToken = ""
			user.VerificationExpires = nil
			changed = true
		}
		if user.ResetToken != "" && user.ResetExpires != nil && !now.UTC().Before(user.ResetExpires.UTC()) {
			user.ResetToken = ""
			user.ResetExpires = nil
			changed = true
		}
		if changed {
			user.UpdatedAt = now.UTC()
			s.users[id] = user
			cleared++
		}
	}
	return cleared, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateSession(_ context.Context, session entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.SessionID] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (entities.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[strings.TrimSpace(sessionID)]
	return session, exists, nil
}

func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, strings.TrimSpace(sessionID))
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
