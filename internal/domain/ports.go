package domain

import "context"

// HotelRepository is the persistence port over the one-file-per-record store.
//
// Mutate runs fn under the record's write lock: the whole read-modify-write
// is serialized per id, so two concurrent mutators of the same record can
// never lose each other's change. Unrelated ids proceed in parallel.
type HotelRepository interface {
	// Write paths
	Create(ctx context.Context, h Hotel) (Hotel, error)
	Mutate(ctx context.Context, id int, fn func(*Hotel) error) (Hotel, error)
	Delete(ctx context.Context, id int) error

	// Read paths
	ByID(ctx context.Context, id int) (Hotel, error)
	BySlug(ctx context.Context, slug string) (Hotel, error)
	Resolve(ctx context.Context, identifier string) (Hotel, error)
	List(ctx context.Context) ([]Hotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
