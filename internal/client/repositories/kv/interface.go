package kv

import (
	"context"
	"errors"
)

// ErrUnavailable reports that a backend cannot serve requests in the current
// environment. Callers treat it as "not applicable" rather than a failure.
var ErrUnavailable = errors.New("storage unavailable")

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
