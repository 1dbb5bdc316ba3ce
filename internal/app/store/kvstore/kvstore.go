// Package kvstore provides the key-value persistence layer for note state.
//
// Note state is persisted as whole values under well-known keys. Both
// backends store values as JSON bytes, so a collection written by one
// backend rehydrates identically from the other.
package kvstore

import "context"

// Recognized keys.
const (
	// KeyFiles holds the ordered list of file records.
	KeyFiles = "files"
	// KeyShowArchived holds the archived-visibility flag.
	KeyShowArchived = "showArchived"
)

// Provider is the persistence contract consumed by the collection store.
//
// Two concrete backends exist (MongoDB and SQLite); which one is used is a
// configuration choice made at startup, never a conditional inside the
// collection store.
type Provider interface {
	// Get loads the value stored under key into v.
	// It returns false with a nil error when the key has never been set.
	Get(ctx context.Context, key string, v any) (bool, error)

	// Set stores v under key, replacing any previous value.
	Set(ctx context.Context, key string, v any) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Migrate creates the backing collection/table as needed.
	Migrate(ctx context.Context) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}
