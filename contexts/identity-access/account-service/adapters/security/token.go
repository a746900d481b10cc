package security

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// HexTokenSource mints 256-bit random tokens encoded as hex, used for email
// verification and password reset links.
type HexTokenSource struct{}

func (HexTokenSource) NewToken(_ context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
