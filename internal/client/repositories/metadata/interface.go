// Package metadata provides the key/value repositories backing the client's
// credential store. Three implementations share one contract: SQLite (the
// default, persisted across runs), Redis (shared between machines) and an
// in-memory map (tests, throwaway sessions).
//
// Contract: Get returns (nil, nil) for a missing key; Delete and Clear are
// idempotent; SetMany and DeleteMany apply all keys or none.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
