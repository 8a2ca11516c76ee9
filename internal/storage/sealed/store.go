package sealed

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/hongminglow/ubu-lite/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// ErrTampered is returned when a stored value fails authentication.
var ErrTampered = errors.New("sealed: value failed authentication")

// Store encrypts values with XChaCha20-Poly1305 before handing them to the
// inner backend. The key name is bound as associated data, so a value
// copied under another key does not open.
type Store struct {
	inner storage.KV
	aead  cipher.AEAD
}

// New wraps inner. key must be chacha20poly1305.KeySize bytes.
func New(inner storage.KV, key []byte) (*Store, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Store{inner: inner, aead: aead}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	enc, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := s.open(key, enc)
	if err != nil {
		return "", false, err
	}
	return string(plain), true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := storage.CheckKeys(key); err != nil {
		return err
	}
	enc, err := s.seal(key, []byte(value))
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, enc)
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}

func (s *Store) Close() error {
	return s.inner.Close()
}

func (s *Store) seal(key string, plaintext []byte) (string, error) {
	// random nonce per value, with room for the ciphertext behind it
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, plaintext, []byte(key))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Store) open(key, encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTampered, err)
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrTampered)
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], []byte(key))
	if err != nil {
		return nil, ErrTampered
	}
	return plain, nil
}
