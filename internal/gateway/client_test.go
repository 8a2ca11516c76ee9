package gateway

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   string
}

func recorder(t *testing.T, status int, contentType, body string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.RequestURI()
		got.header = r.Header.Clone()
		got.body = string(b)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestDoSendsBearerToken(t *testing.T) {
	srv, got := recorder(t, http.StatusOK, "application/json", `[]`)
	c := New(srv.URL + "/api")

	_, err := c.Do(context.Background(), Get("/bookings/"), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", got.header.Get("Authorization"))
	assert.Equal(t, "/api/bookings/", got.path)
	assert.NotEmpty(t, got.header.Get(RequestIDHeader))
}

func TestDoJSONWithoutToken(t *testing.T) {
	srv, got := recorder(t, http.StatusCreated, "application/json", `{}`)
	c := New(srv.URL)

	req, err := JSON(http.MethodPost, "/things/", map[string]int{"a": 1})
	require.NoError(t, err)
	_, err = c.Do(context.Background(), req, "")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	_, present := got.header["Authorization"]
	assert.False(t, present)
	assert.Equal(t, `{"a":1}`, got.body)
}

func TestDoStripsCallerAuthorizationWithoutToken(t *testing.T) {
	srv, got := recorder(t, http.StatusOK, "text/plain", "ok")
	c := New(srv.URL)

	req := Get("/x/")
	req.Header = http.Header{"Authorization": {"Bearer stale"}, RequestIDHeader: {"fixed-id"}}
	_, err := c.Do(context.Background(), req, "")
	require.NoError(t, err)
	assert.Empty(t, got.header.Get("Authorization"))
	assert.Equal(t, "fixed-id", got.header.Get(RequestIDHeader))
}

func TestDoFailureUsesBodyText(t *testing.T) {
	srv, _ := recorder(t, http.StatusBadRequest, "text/plain", "Invalid credentials")
	c := New(srv.URL)

	_, err := c.Do(context.Background(), Get("/auth/login/"), "")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestDoFailureWithEmptyBodyNamesStatus(t *testing.T) {
	srv, _ := recorder(t, http.StatusInternalServerError, "", "")
	c := New(srv.URL)

	_, err := c.Do(context.Background(), Get("/wallet/"), "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDoDecodesJSON(t *testing.T) {
	srv, _ := recorder(t, http.StatusOK, "application/json; charset=utf-8", `{"id":7,"status":"pending"}`)
	c := New(srv.URL)

	resp, err := c.Do(context.Background(), Get("/bookings/7/"), "t")
	require.NoError(t, err)
	require.True(t, resp.IsJSON())

	v, err := resp.Value()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(7), "status": "pending"}, v)

	type booking struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	b, err := Decode[booking](resp)
	require.NoError(t, err)
	assert.Equal(t, booking{ID: 7, Status: "pending"}, b)
}

func TestDoReturnsTextBody(t *testing.T) {
	srv, _ := recorder(t, http.StatusOK, "text/plain", "hello")
	c := New(srv.URL)

	resp, err := c.Do(context.Background(), Get("/"), "")
	require.NoError(t, err)

	v, err := resp.Value()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	s, err := Decode[string](resp)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = Decode[map[string]any](resp)
	var decErr *DecodeError
	assert.True(t, errors.As(err, &decErr))
}

func TestDoTransportErrorUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base).Do(context.Background(), Get("/x/"), "")
	require.Error(t, err)
	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestMultipartContentTypeFromEncoder(t *testing.T) {
	srv, got := recorder(t, http.StatusCreated, "application/json", `{}`)
	c := New(srv.URL)

	form := NewForm().Field("title", "Shoot").File("image", "a.jpg", strings.NewReader("jpegbytes"))
	req, err := Multipart(http.MethodPost, "/portfolio/", form)
	require.NoError(t, err)
	_, err = c.Do(context.Background(), req, "t")
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(got.header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	mr := multipart.NewReader(strings.NewReader(got.body), params["boundary"])
	f, err := mr.ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shoot"}, f.Value["title"])
	require.Len(t, f.File["image"], 1)
	assert.Equal(t, "a.jpg", f.File["image"][0].Filename)
}

func TestHooksObserveCalls(t *testing.T) {
	srv, _ := recorder(t, http.StatusOK, "application/json", `{}`)
	var requests, responses atomic.Int32
	var lastStatus atomic.Int32

	c := New(srv.URL, WithHooks(Chain(Hooks{
		OnRequest: func(context.Context, *http.Request) { requests.Add(1) },
	}, Hooks{
		OnResponse: func(_ context.Context, _ *http.Request, resp *http.Response, _ time.Duration) {
			responses.Add(1)
			lastStatus.Store(int32(resp.StatusCode))
		},
	})))

	_, err := c.Do(context.Background(), Get("/"), "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, int32(1), responses.Load())
	assert.Equal(t, int32(http.StatusOK), lastStatus.Load())
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv, _ := recorder(t, http.StatusOK, "text/plain", "")
	c := New(srv.URL, WithRateLimit(0.001, 1))

	_, err := c.Do(context.Background(), Get("/"), "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Do(ctx, Get("/"), "")
	assert.Error(t, err)
}
