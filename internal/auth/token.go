package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hongminglow/ubu-lite/internal/models"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is presented as an access token or vice versa.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims mirrors the simplejwt payload: token_type and user_id next to the registered claims.
type Claims struct {
	TokenType string      `json:"token_type"`
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username,omitempty"`
	Role      models.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWT pairs.
type TokenManager struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and access lifetime.
// Refresh tokens live a day or ttl, whichever is longer.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	refresh := 24 * time.Hour
	if ttl > refresh {
		refresh = ttl
	}
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		ttl:        ttl,
		refreshTTL: refresh,
	}
}

// Generate issues an access/refresh pair for the user.
func (t *TokenManager) Generate(user models.User) (access, refresh string, err error) {
	access, err = t.sign(user, TypeAccess, t.ttl)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.sign(user, TypeRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Reissue exchanges a valid refresh token for a new access token.
func (t *TokenManager) Reissue(refresh string) (string, error) {
	claims, err := t.Verify(refresh, TypeRefresh)
	if err != nil {
		return "", err
	}
	user := models.User{ID: claims.UserID, Username: claims.Username, Role: claims.Role}
	return t.sign(user, TypeAccess, t.ttl)
}

// Verify checks signature, issuer, expiry and token type.
func (t *TokenManager) Verify(token, wantType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		return nil, err
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func (t *TokenManager) sign(user models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
