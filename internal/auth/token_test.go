package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ubu-lite/internal/models"
)

func TestGenerateAndVerify(t *testing.T) {
	tm := NewTokenManager("s3cret", "ubu-test", time.Hour)
	access, refresh, err := tm.Generate(models.User{ID: 12, Username: "ada", Role: models.RoleCreative})
	require.NoError(t, err)

	claims, err := tm.Verify(access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, models.RoleCreative, claims.Role)

	_, err = tm.Verify(refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	access, _, err := NewTokenManager("a", "ubu", time.Hour).Generate(models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("b", "ubu", time.Hour).Verify(access, TypeAccess)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	access, _, err := NewTokenManager("a", "ubu", -time.Minute).Generate(models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("a", "ubu", time.Hour).Verify(access, TypeAccess)
	assert.Error(t, err)
}

func TestReissue(t *testing.T) {
	tm := NewTokenManager("s3cret", "ubu-test", time.Hour)
	_, refresh, err := tm.Generate(models.User{ID: 3, Username: "bo"})
	require.NoError(t, err)

	access, err := tm.Reissue(refresh)
	require.NoError(t, err)
	claims, err := tm.Verify(access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
}

func TestInspect(t *testing.T) {
	tm := NewTokenManager("s3cret", "ubu-test", 30*time.Minute)
	access, _, err := tm.Generate(models.User{ID: 42, Username: "cy"})
	require.NoError(t, err)

	info, err := Inspect(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.UserID)
	assert.Equal(t, "cy", info.Username)
	assert.Equal(t, TypeAccess, info.TokenType)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(time.Hour)))
}

func TestInspectMalformed(t *testing.T) {
	_, err := Inspect("abc123")
	assert.Error(t, err)
}
