package api

import (
	"context"
	"encoding/json"

	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/outcome"
)

// Register creates an account. The backend answers with the created user,
// or a token pair when it signs the user in directly.
func (a *API) Register(ctx context.Context, in dto.RegisterRequest) outcome.Outcome[json.RawMessage] {
	return Call[json.RawMessage](ctx, a, OpRegister, Args{Body: in})
}

// Login exchanges credentials for a token pair. A reply without an access
// token is a decode failure.
func (a *API) Login(ctx context.Context, in dto.LoginRequest) outcome.Outcome[dto.LoginResponse] {
	return loginCall(ctx, a, OpLogin, in)
}

// GoogleLogin exchanges a Google ID token for a token pair.
func (a *API) GoogleLogin(ctx context.Context, in dto.GoogleLoginRequest) outcome.Outcome[dto.LoginResponse] {
	return loginCall(ctx, a, OpGoogleLogin, in)
}

// RefreshToken trades a refresh token for a new access token.
func (a *API) RefreshToken(ctx context.Context, refresh string) outcome.Outcome[dto.RefreshResponse] {
	return Call[dto.RefreshResponse](ctx, a, OpRefresh, Args{Body: dto.RefreshRequest{Refresh: refresh}})
}

func loginCall(ctx context.Context, a *API, op Operation, body any) outcome.Outcome[dto.LoginResponse] {
	raw := Call[json.RawMessage](ctx, a, op, Args{Body: body})
	if !raw.OK() {
		return outcome.Fail[dto.LoginResponse](raw.Err())
	}
	resp, err := dto.ParseLoginResponse(raw.Value())
	if err != nil {
		return outcome.Fail[dto.LoginResponse](&gateway.DecodeError{
			ContentType: "application/json",
			Target:      "dto.LoginResponse",
			Err:         err,
		})
	}
	return outcome.Ok(resp)
}
