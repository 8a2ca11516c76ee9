package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries a per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Client sends requests to the marketplace backend. It is safe for
// concurrent use.
type Client struct {
	base    string
	http    *http.Client
	log     logrus.FieldLogger
	hooks   Hooks
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHooks installs observability callbacks.
func WithHooks(h Hooks) Option {
	return func(c *Client) {
		c.hooks = h
	}
}

// WithRateLimit paces outgoing calls to perSecond with the given burst.
// A non-positive rate leaves the client unpaced.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New returns a client for the backend rooted at base, e.g.
// http://localhost:8000/api. Paths are appended to base verbatim.
func New(base string, opts ...Option) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: http.DefaultClient,
		log:  discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the prefix every request path is appended to.
func (c *Client) Base() string {
	return c.base
}

// Do sends req with token as the bearer credential. An empty token sends
// the request without an Authorization header even if req carries one.
//
// A 2xx reply returns the fully read Response. Any other status returns an
// *APIError. Transport errors from the underlying http.Client are returned
// unchanged.
func (c *Client) Do(ctx context.Context, req Request, token string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.base+req.Path, req.Body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, req.Path, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	} else {
		httpReq.Header.Del("Authorization")
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       req.Path,
		"request_id": httpReq.Header.Get(RequestIDHeader),
	})

	c.hooks.request(ctx, httpReq)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		entry.WithError(err).Debug("marketplace call failed")
		c.hooks.error(ctx, httpReq, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		entry.WithError(err).Debug("marketplace body read failed")
		c.hooks.error(ctx, httpReq, err)
		return nil, err
	}
	c.hooks.response(ctx, httpReq, resp, elapsed)

	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": elapsed,
	}).Debug("marketplace call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, string(body))
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
