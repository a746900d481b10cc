package entities

import "time"

// Session is a server-side login session addressed by an opaque id.
type Session struct {
	SessionID string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.UTC().Before(s.ExpiresAt.UTC())
}

// Principal is a resolved identity: who the request is acting as, plus the
// privilege flags re-read from storage at resolution time.
type Principal struct {
	UserID string
	Admin  bool
}
