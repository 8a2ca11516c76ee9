package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ubu-lite/internal/models"
)

func TestParseLoginResponse(t *testing.T) {
	resp, err := ParseLoginResponse([]byte(`{"access":"a.b.c","refresh":"r.r.r","user":{"id":4,"username":"ada","role":"creative"}}`))
	require.NoError(t, err)

	assert.Equal(t, "a.b.c", resp.Access)
	assert.Equal(t, "r.r.r", resp.Refresh)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(4), resp.User.ID)
	assert.Equal(t, models.RoleCreative, resp.User.Role)
}

func TestParseLoginResponseWithoutUser(t *testing.T) {
	resp, err := ParseLoginResponse([]byte(`{"access":"tok"}`))
	require.NoError(t, err)
	assert.Nil(t, resp.User)
}

func TestParseLoginResponseRequiresAccess(t *testing.T) {
	for _, body := range []string{`{}`, `{"access":""}`, `{"access":42}`, `{"refresh":"r"}`} {
		_, err := ParseLoginResponse([]byte(body))
		assert.ErrorIs(t, err, ErrMissingAccessToken, body)
	}
}

func TestParseLoginResponseInvalidJSON(t *testing.T) {
	_, err := ParseLoginResponse([]byte(`{"access":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAccessToken)
}

func TestWithdrawRequestOmitsZeroAmount(t *testing.T) {
	b, err := json.Marshal(WithdrawRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	b, err = json.Marshal(WithdrawRequest{Amount: 12.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":12.5}`, string(b))
}
