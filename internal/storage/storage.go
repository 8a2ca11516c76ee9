package storage

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned when an operation is given an empty key.
var ErrEmptyKey = errors.New("storage: empty key")

// KV is the persistence adapter behind the credential store. Values are
// opaque strings; backends never interpret them.
type KV interface {
	// Get returns the value and whether the key exists. A missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes all given keys in one backend operation. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// CheckKeys returns ErrEmptyKey if any key is empty.
func CheckKeys(keys ...string) error {
	for _, k := range keys {
		if k == "" {
			return ErrEmptyKey
		}
	}
	return nil
}
