package core

import "context"

// Repository defines the contract for persisting the flashcard
// collection. Adhering to this interface keeps the core independent of
// the underlying storage mechanism (JSON slot file, BoltDB, memory).
//
// The baseline model is the browser-storage one: a single named slot
// holding the entire collection, read in full and replaced in full.
type Repository interface {
	// Load returns the full collection. An absent slot yields an empty
	// slice, not an error.
	Load(ctx context.Context) ([]Flashcard, error)

	// Replace overwrites the slot with the given collection wholesale.
	Replace(ctx context.Context, cards []Flashcard) error

	// Initialize ensures the underlying storage is ready (e.g. create
	// directories, open the database file).
	Initialize(ctx context.Context) error
}

// Recorder is an optional fast path for adapters that support
// per-record operations. When available, the service prefers it over
// whole-collection rewrites for single-card mutations.
type Recorder interface {
	// Put inserts or updates a single record.
	Put(ctx context.Context, card Flashcard) error

	// Remove deletes a single record by id. Unknown ids are a no-op.
	Remove(ctx context.Context, id string) error
}

// EventType represents the type of change observed in the collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an observed change to the persisted collection.
type Event struct {
	Type      EventType
	Timestamp int64 // Unix timestamp
}

// Watchable is implemented by adapters that can observe external writes
// to the underlying storage (the storage.onChanged analogue).
type Watchable interface {
	// Watch emits events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
