package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what a client can learn from an access token without the signing key.
type TokenInfo struct {
	UserID    int64
	Username  string
	TokenType string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp lies before now. Tokens without exp never expire.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect decodes the claims of a JWT without verifying its signature.
// The result is for display only; the backend remains the authority.
func Inspect(token string) (TokenInfo, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("inspect token: %w", err)
	}
	info := TokenInfo{
		UserID:    claims.UserID,
		Username:  claims.Username,
		TokenType: claims.TokenType,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
