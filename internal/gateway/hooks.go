package gateway

import (
	"context"
	"net/http"
	"time"
)

// Hooks observe every call. Any field may be nil. OnRequest fires before
// the call; exactly one of OnResponse or OnError follows it.
type Hooks struct {
	OnRequest  func(ctx context.Context, req *http.Request)
	OnResponse func(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration)
	OnError    func(ctx context.Context, req *http.Request, err error)
}

func (h Hooks) request(ctx context.Context, req *http.Request) {
	if h.OnRequest != nil {
		h.OnRequest(ctx, req)
	}
}

func (h Hooks) response(ctx context.Context, req *http.Request, resp *http.Response, d time.Duration) {
	if h.OnResponse != nil {
		h.OnResponse(ctx, req, resp, d)
	}
}

func (h Hooks) error(ctx context.Context, req *http.Request, err error) {
	if h.OnError != nil {
		h.OnError(ctx, req, err)
	}
}

// Chain runs each hook set in order.
func Chain(sets ...Hooks) Hooks {
	return Hooks{
		OnRequest: func(ctx context.Context, req *http.Request) {
			for _, h := range sets {
				h.request(ctx, req)
			}
		},
		OnResponse: func(ctx context.Context, req *http.Request, resp *http.Response, d time.Duration) {
			for _, h := range sets {
				h.response(ctx, req, resp, d)
			}
		},
		OnError: func(ctx context.Context, req *http.Request, err error) {
			for _, h := range sets {
				h.error(ctx, req, err)
			}
		},
	}
}
