// Package state stores small keyed records for the console: the persisted
// session user lives here. Backed by a local sqlite database so records
// survive process restarts.
package state

import "context"

// Repository is a keyed blob store.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
