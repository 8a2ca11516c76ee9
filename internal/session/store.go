// Package session is the credential store: the access token and the
// minimal user record that identify who is signed in, persisted through a
// storage.KV backend.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hongminglow/ubu-lite/internal/auth"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/storage"
)

const (
	TokenKey = "ubu_auth_token"
	UserKey  = "ubu_auth_user"
)

// DecodeError reports a stored user record that is not valid JSON.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode stored user: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BackendError reports a failure of the storage backend itself: an
// unreadable session file, an unreachable redis, a failed SQL statement.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func backendErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// Store projects the two session slots over a KV backend.
type Store struct {
	kv       storage.KV
	tokenKey string
	userKey  string
}

// Option customizes a Store.
type Option func(*Store)

// WithNamespace prefixes both slot keys with "<ns>:" so several profiles can share a backend.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		ns = strings.TrimSpace(ns)
		if ns == "" {
			return
		}
		s.tokenKey = ns + ":" + TokenKey
		s.userKey = ns + ":" + UserKey
	}
}

// New builds a Store over kv.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, tokenKey: TokenKey, userKey: UserKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the persisted access token.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	token, ok, err := s.kv.Get(ctx, s.tokenKey)
	if err != nil {
		return "", false, backendErr("read token", err)
	}
	return token, ok, nil
}

// SetToken overwrites the persisted token. The format is not checked.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return backendErr("write token", s.kv.Set(ctx, s.tokenKey, token))
}

// ClearToken removes the token. Clearing an absent token is not an error.
func (s *Store) ClearToken(ctx context.Context) error {
	return backendErr("clear token", s.kv.Delete(ctx, s.tokenKey))
}

// User returns the stored user, or nil when none is stored or the record
// is a JSON null. A corrupt record yields a *DecodeError.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.kv.Get(ctx, s.userKey)
	if err != nil {
		return nil, backendErr("read user", err)
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || raw == "null" {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}
	return &u, nil
}

// SetUser stores the JSON-serialized user record.
func (s *Store) SetUser(ctx context.Context, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return backendErr("write user", s.kv.Set(ctx, s.userKey, string(b)))
}

// Logout removes both slots in one backend call.
func (s *Store) Logout(ctx context.Context) error {
	return backendErr("logout", s.kv.Delete(ctx, s.tokenKey, s.userKey))
}

// Begin records a successful login: the token first, then the user from
// the response or, when the backend sent none, a record holding only
// fallbackUsername. The previous user record is dropped before the new
// token lands, so a failed user write never pairs it with a stale user.
func (s *Store) Begin(ctx context.Context, resp dto.LoginResponse, fallbackUsername string) error {
	if resp.Access == "" {
		return dto.ErrMissingAccessToken
	}
	if err := s.kv.Delete(ctx, s.userKey); err != nil {
		return fmt.Errorf("drop previous user: %w", backendErr("clear user", err))
	}
	if err := s.SetToken(ctx, resp.Access); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	user := models.User{Username: fallbackUsername}
	if resp.User != nil {
		user = *resp.User
	}
	if err := s.SetUser(ctx, user); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Status summarizes the stored session.
type Status struct {
	SignedIn bool
	User     *models.User
	Token    *auth.TokenInfo
	Expired  bool
}

// Status reads both slots and decodes the token claims when the token is a JWT.
// An opaque token still counts as signed in.
func (s *Store) Status(ctx context.Context, now time.Time) (Status, error) {
	token, ok, err := s.Token(ctx)
	if err != nil {
		return Status{}, err
	}
	user, err := s.User(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{SignedIn: ok && token != "", User: user}
	if st.SignedIn {
		if info, err := auth.Inspect(token); err == nil {
			st.Token = &info
			st.Expired = info.Expired(now)
		}
	}
	return st, nil
}
