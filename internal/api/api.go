// Package api is the named call surface over the marketplace backend. Every
// method maps to one catalog Operation and returns an outcome.Outcome.
package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/outcome"
)

// Doer sends one request. *gateway.Client implements it.
type Doer interface {
	Do(ctx context.Context, req gateway.Request, token string) (*gateway.Response, error)
}

// TokenSource yields the bearer token for the next call. *session.Store
// implements it; a missing token sends the call unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, bool, error) {
	return string(t), t != "", nil
}

// API issues catalog operations. It holds no state between calls.
type API struct {
	doer   Doer
	tokens TokenSource
}

// New returns an API sending through doer with credentials from tokens.
// tokens may be nil for anonymous use.
func New(doer Doer, tokens TokenSource) *API {
	return &API{doer: doer, tokens: tokens}
}

// WithToken returns a copy of a that uses token instead of its TokenSource.
func (a *API) WithToken(token string) *API {
	return &API{doer: a.doer, tokens: StaticToken(token)}
}

// Args are the per-call inputs of an operation.
type Args struct {
	ID    int64
	Query url.Values
	Body  any
	Form  *gateway.Form
}

// Call runs op and decodes the reply into T. It is the single path every
// typed method goes through and is usable directly with a caller-chosen T.
func Call[T any](ctx context.Context, a *API, op Operation, args Args) outcome.Outcome[T] {
	req, err := a.build(op, args)
	if err != nil {
		return outcome.Fail[T](err)
	}
	token, err := a.token(ctx)
	if err != nil {
		return outcome.Fail[T](fmt.Errorf("%s: read token: %w", op.Name, err))
	}
	resp, err := a.doer.Do(ctx, req, token)
	if err != nil {
		return outcome.Fail[T](err)
	}
	return outcome.From(gateway.Decode[T](resp))
}

func (a *API) token(ctx context.Context) (string, error) {
	if a.tokens == nil {
		return "", nil
	}
	token, ok, err := a.tokens.Token(ctx)
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

func (a *API) build(op Operation, args Args) (gateway.Request, error) {
	path := op.Path
	if op.NeedsID() {
		path = op.Resolve(args.ID)
	}
	if len(args.Query) > 0 {
		path += "?" + args.Query.Encode()
	}

	switch op.Body {
	case JSONBody:
		return gateway.JSON(op.Method, path, args.Body)
	case MultipartBody:
		form := args.Form
		if form == nil {
			form = gateway.NewForm()
		}
		return gateway.Multipart(op.Method, path, form)
	default:
		return gateway.Request{Path: path, Method: op.Method}, nil
	}
}
