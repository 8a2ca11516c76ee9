package sealed

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ubu-lite/internal/storage/memory"
)

func testKey() []byte {
	return bytes.Repeat([]byte{7}, 32)
}

func TestSealedRoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	s, err := New(inner, testKey())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "ubu_auth_token", "abc123"))

	raw, ok, err := inner.Get(ctx, "ubu_auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "abc123")

	got, ok, err := s.Get(ctx, "ubu_auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", got)
}

func TestSealedMissingKey(t *testing.T) {
	s, err := New(memory.New(), testKey())
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSealedDetectsTampering(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	s, err := New(inner, testKey())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a", "secret"))

	raw, _, _ := inner.Get(ctx, "a")
	require.NoError(t, inner.Set(ctx, "b", raw))
	_, _, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrTampered)

	require.NoError(t, inner.Set(ctx, "a", "!!not-base64!!"))
	_, _, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrTampered)
}

func TestSealedWrongKey(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	s, err := New(inner, testKey())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a", "secret"))

	other, err := New(inner, bytes.Repeat([]byte{9}, 32))
	require.NoError(t, err)
	_, _, err = other.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrTampered)
}

func TestSealedKeySize(t *testing.T) {
	_, err := New(memory.New(), []byte("short"))
	assert.Error(t, err)
}
