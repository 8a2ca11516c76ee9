package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/hongminglow/ubu-lite/internal/models"
)

// ErrMissingAccessToken is returned when a login response has no usable access token.
var ErrMissingAccessToken = errors.New("login response missing access token")

type RegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email,omitempty"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the simplejwt token pair, optionally with the user record.
type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type GoogleLoginRequest struct {
	IDToken string      `json:"id_token"`
	Role    models.Role `json:"role,omitempty"`
}

// ParseLoginResponse decodes a login body. The access token is the one
// field the client depends on, so its absence is an error rather than an
// empty session.
func ParseLoginResponse(raw []byte) (LoginResponse, error) {
	if !gjson.ValidBytes(raw) {
		return LoginResponse{}, fmt.Errorf("parse login response: invalid JSON")
	}
	access := gjson.GetBytes(raw, "access")
	if access.Type != gjson.String || access.Str == "" {
		return LoginResponse{}, ErrMissingAccessToken
	}
	var out LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return LoginResponse{}, fmt.Errorf("parse login response: %w", err)
	}
	return out, nil
}
