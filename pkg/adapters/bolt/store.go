// Package bolt persists flashcards per-record in a BoltDB file. Unlike
// the slot-file adapter, single-card mutations touch only their own key,
// so the whole-collection read-modify-write race never arises.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/webflash/webflash/pkg/core"
)

const (
	// DBFile is the database file name inside the data directory.
	DBFile = "flashcards.bolt"

	bucketCards = "flashcards"
)

// Repository implements core.Repository and core.Recorder over bbolt.
// The database is opened per operation with a short lock timeout; the
// collection is small and contention is one process at a time.
type Repository struct {
	Path   string // data directory
	logger *slog.Logger
}

// Config holds the configuration for the bolt repository.
type Config struct {
	Path   string
	Logger *slog.Logger
}

// NewRepository creates a new bolt-backed repository.
func NewRepository(config Config) *Repository {
	return &Repository{Path: config.Path, logger: config.Logger}
}

func (r *Repository) dbPath() string {
	return filepath.Join(r.Path, DBFile)
}

func (r *Repository) open() (*bbolt.DB, error) {
	return bbolt.Open(r.dbPath(), 0o600, &bbolt.Options{Timeout: 2 * time.Second})
}

// Initialize creates the data directory and the cards bucket.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(r.Path, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	return db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCards))
		return err
	})
}

// Load returns the full collection in creation order.
func (r *Repository) Load(ctx context.Context) ([]core.Flashcard, error) {
	db, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	cards := []core.Flashcard{}
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketCards))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var card core.Flashcard
			if len(v) == 0 {
				return nil
			}
			if e := json.Unmarshal(v, &card); e != nil {
				// Skip malformed entries instead of failing the whole load.
				if r.logger != nil {
					r.logger.Warn("skipping malformed record", "key", string(k))
				}
				return nil
			}
			cards = append(cards, card)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Bucket iteration is key-ordered; callers expect creation order.
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Created.Equal(cards[j].Created) {
			return cards[i].ID < cards[j].ID
		}
		return cards[i].Created.Before(cards[j].Created)
	})
	return cards, nil
}

// Replace rewrites the bucket to reflect the given snapshot exactly.
func (r *Repository) Replace(ctx context.Context, cards []core.Flashcard) error {
	db, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bbolt.Tx) error {
		if b := tx.Bucket([]byte(bucketCards)); b != nil {
			if err := tx.DeleteBucket([]byte(bucketCards)); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket([]byte(bucketCards))
		if err != nil {
			return err
		}
		for _, card := range cards {
			enc, err := json.Marshal(card)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(card.ID), enc); err != nil {
				return err
			}
		}
		return nil
	})
}

// Put inserts or updates a single record.
func (r *Repository) Put(ctx context.Context, card core.Flashcard) error {
	db, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketCards))
		if err != nil {
			return err
		}
		enc, err := json.Marshal(card)
		if err != nil {
			return err
		}
		return b.Put([]byte(card.ID), enc)
	})
}

// Remove deletes a single record by id. Unknown ids are a no-op.
func (r *Repository) Remove(ctx context.Context, id string) error {
	db, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketCards))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
}
