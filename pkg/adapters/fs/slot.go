// Package fs persists the flashcard collection as a single JSON slot
// file, mirroring the extension-storage model: the whole collection is
// read in full and replaced in full on every write.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/webflash/webflash/pkg/core"
)

const (
	// SlotFile is the name of the collection slot inside the data dir.
	SlotFile = "flashcards.json"

	// tempFilePrefix is the prefix used for temporary atomic write files.
	tempFilePrefix = "webflash-tmp-"
)

// Repository implements core.Repository over a JSON slot file.
type Repository struct {
	Path   string // data directory
	config Config
}

// Config holds the configuration for the slot-file repository.
type Config struct {
	Path      string
	MustExist bool
	Logger    *slog.Logger
}

// NewRepository creates a new slot-file repository.
func NewRepository(config Config) *Repository {
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the data directory exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
		return nil
	}
	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// slotPath returns the absolute path of the collection file.
func (r *Repository) slotPath() string {
	return filepath.Join(r.Path, SlotFile)
}

// Load reads the full collection. An absent slot yields an empty slice.
func (r *Repository) Load(ctx context.Context) ([]core.Flashcard, error) {
	data, err := os.ReadFile(r.slotPath())
	if os.IsNotExist(err) {
		return []core.Flashcard{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	return decodeSlot(data)
}

// decodeSlot parses the slot contents. Early versions of the extension
// sometimes stored the collection double-encoded (a JSON string holding
// the JSON array), so that form is tolerated on read.
func decodeSlot(data []byte) ([]core.Flashcard, error) {
	if len(data) == 0 {
		return []core.Flashcard{}, nil
	}

	var cards []core.Flashcard
	if err := json.Unmarshal(data, &cards); err == nil {
		return cards, nil
	}

	var nested string
	if err := json.Unmarshal(data, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &cards); err == nil {
			return cards, nil
		}
	}

	return nil, fmt.Errorf("collection slot is not a flashcard array")
}

// Replace overwrites the slot with the given collection wholesale.
// The write is atomic: data goes to a temp file in the same directory
// which is then renamed over the slot.
func (r *Repository) Replace(ctx context.Context, cards []core.Flashcard) error {
	if cards == nil {
		cards = []core.Flashcard{}
	}
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	return writeFileAtomic(r.slotPath(), data, 0644)
}

// writeFileAtomic writes data to a file atomically by writing to a temp
// file and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
