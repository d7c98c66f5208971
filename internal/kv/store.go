// Package kv is the key-value persistence handle shared by every feature.
// Values are JSON documents; every write bumps a per-key revision so callers
// can detect concurrent read-modify-write cycles.
package kv

import (
	"context"
	"errors"
	"time"

	"github.com/kezzyngotho/aura/pkg/retry"
)

// Common errors
var (
	ErrNotFound = errors.New("key not found")
	ErrConflict = errors.New("key was modified concurrently")
)

// Store is the get/put/delete contract of the key-value backend.
type Store interface {
	// Get decodes the value at key into dst and returns its revision.
	// Missing or expired keys return ErrNotFound.
	Get(ctx context.Context, key string, dst any) (int64, error)
	// Put encodes value as JSON and stores it at key.
	Put(ctx context.Context, key string, value any, opts ...PutOption) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// PutOption customizes a single Put.
type PutOption func(*putOptions)

type putOptions struct {
	ttl         time.Duration
	revision    int64
	conditional bool
}

// WithTTL expires the value after d.
func WithTTL(d time.Duration) PutOption {
	return func(o *putOptions) {
		o.ttl = d
	}
}

// IfRevision makes the write succeed only while the stored revision equals rev.
// A revision of 0 means the key must not exist yet. Mismatches return ErrConflict.
func IfRevision(rev int64) PutOption {
	return func(o *putOptions) {
		o.revision = rev
		o.conditional = true
	}
}

func applyPutOptions(opts []PutOption) putOptions {
	var o putOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var conflictPolicy = retry.Policy{
	MaxAttempts: 5,
	Delay:       retry.Linear(10 * time.Millisecond),
	ShouldRetry: func(err error) bool { return errors.Is(err, ErrConflict) },
}

// Update reads the value at key, lets fn modify it and writes it back under
// the revision it was read at. Concurrent writers cause a re-read and another
// call to fn. An error from fn aborts without writing anything.
func Update[T any](ctx context.Context, s Store, key string, fn func(v *T, exists bool) error, opts ...PutOption) (T, error) {
	return retry.DoValue(ctx, conflictPolicy, func(ctx context.Context) (T, error) {
		var v T
		exists := true
		rev, err := s.Get(ctx, key, &v)
		if errors.Is(err, ErrNotFound) {
			exists = false
			rev = 0
		} else if err != nil {
			return v, err
		}

		if err := fn(&v, exists); err != nil {
			return v, err
		}

		putOpts := append(append([]PutOption{}, opts...), IfRevision(rev))
		if err := s.Put(ctx, key, v, putOpts...); err != nil {
			return v, err
		}
		return v, nil
	})
}

// Append adds item to the JSON list stored at key, creating it when missing.
func Append[T any](ctx context.Context, s Store, key string, item T, opts ...PutOption) error {
	_, err := Update(ctx, s, key, func(list *[]T, _ bool) error {
		*list = append(*list, item)
		return nil
	}, opts...)
	return err
}
