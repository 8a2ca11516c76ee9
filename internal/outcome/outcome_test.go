package outcome

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/session"
)

func TestOutcomeSuccessAndFailure(t *testing.T) {
	ok := From([]int{1, 2}, nil)
	require.True(t, ok.OK())
	assert.Equal(t, []int{1, 2}, ok.Value())
	assert.Equal(t, []int{1, 2}, ok.OrElse(nil))
	assert.Equal(t, Notice{}, ok.Notice())

	boom := errors.New("boom")
	bad := From([]int{9}, boom)
	require.False(t, bad.OK())
	assert.Nil(t, bad.Value())
	assert.Equal(t, []int{}, bad.OrElse([]int{}))
	_, err := bad.Get()
	assert.ErrorIs(t, err, boom)
}

func TestFailWithNilStillFails(t *testing.T) {
	o := Fail[string](nil)
	assert.False(t, o.OK())
	assert.Error(t, o.Err())
}

func TestMap(t *testing.T) {
	n := Map(Ok("abc"), func(s string) int { return len(s) })
	assert.Equal(t, 3, n.Value())

	boom := errors.New("boom")
	f := Map(Fail[string](boom), func(s string) int { return len(s) })
	assert.ErrorIs(t, f.Err(), boom)
}

func TestPresentApplication(t *testing.T) {
	err := fmt.Errorf("login: %w", &gateway.APIError{Status: 400, Body: "Invalid credentials", Message: "Invalid credentials"})
	n := Present(err)
	assert.Equal(t, KindApplication, n.Kind)
	assert.Equal(t, 400, n.Status)
	assert.Equal(t, "Invalid credentials", n.Message)
	assert.False(t, n.Retryable)

	n = Present(&gateway.APIError{Status: 503, Message: "request failed: 503"})
	assert.True(t, n.Retryable)
}

func TestPresentTransport(t *testing.T) {
	err := &url.Error{Op: "Get", URL: "http://localhost:1/api/", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
	n := Present(err)
	assert.Equal(t, KindTransport, n.Kind)
	assert.True(t, strings.HasPrefix(n.Message, TransportPrefix))
	assert.True(t, n.Retryable)
}

func TestPresentDecode(t *testing.T) {
	assert.Equal(t, KindDecode, Present(&gateway.DecodeError{ContentType: "text/html", Target: "[]models.Booking"}).Kind)
	assert.Equal(t, KindDecode, Present(&session.DecodeError{Raw: "{", Err: errors.New("eof")}).Kind)
	assert.Equal(t, KindDecode, Present(dto.ErrMissingAccessToken).Kind)
}

func TestPresentCanceled(t *testing.T) {
	err := &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled}
	assert.Equal(t, KindCanceled, Present(err).Kind)
}

func TestPresentSessionBackend(t *testing.T) {
	err := fmt.Errorf("list_bookings: read token: %w", &session.BackendError{Op: "read token", Err: errors.New("connection refused")})
	n := Present(err)
	assert.Equal(t, KindSession, n.Kind)
	assert.False(t, n.Retryable)
	assert.False(t, strings.HasPrefix(n.Message, TransportPrefix))
	assert.Contains(t, n.Message, "connection refused")

	err = &session.BackendError{Op: "read token", Err: context.DeadlineExceeded}
	assert.Equal(t, KindCanceled, Present(err).Kind)
}

func TestPresentLocalFailure(t *testing.T) {
	n := Present(fmt.Errorf("checkout: %w", errors.New("service not found")))
	assert.Equal(t, KindLocal, n.Kind)
	assert.False(t, n.Retryable)
	assert.Equal(t, "checkout: service not found", n.Message)
}
