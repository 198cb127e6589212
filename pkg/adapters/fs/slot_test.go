package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/webflash/webflash/pkg/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(Config{Path: t.TempDir()})
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return repo
}

func TestLoad_AbsentSlot(t *testing.T) {
	repo := newTestRepo(t)

	cards, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Errorf("absent slot must yield empty slice, got %v", cards)
	}
}

func TestReplaceAndLoad_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := []core.Flashcard{
		{ID: core.NewID(), Front: "q", Back: "a", Tags: []string{"t"}, Created: time.Now().UTC()},
		{ID: core.NewID(), Front: "q2", Back: "a2", Created: time.Now().UTC()},
	}
	if err := repo.Replace(ctx, in); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 2 || out[0].ID != in[0].ID || out[1].Front != "q2" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoad_LegacyDoubleEncodedSlot(t *testing.T) {
	repo := newTestRepo(t)

	// Some historical data stored the array as a JSON string.
	legacy := `"[{\"id\": 123, \"front\": \"f\", \"back\": \"b\", \"tags\": [], \"created\": \"2025-01-01T00:00:00Z\", \"lastReviewed\": null}]"`
	if err := os.WriteFile(filepath.Join(repo.Path, SlotFile), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	cards, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed on legacy slot: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "123" {
		t.Errorf("legacy decode mismatch: %+v", cards)
	}
}

func TestLoad_MalformedSlot(t *testing.T) {
	repo := newTestRepo(t)

	if err := os.WriteFile(filepath.Join(repo.Path, SlotFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("malformed slot must surface an error")
	}
}

func TestReplace_Wholesale(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.Replace(ctx, []core.Flashcard{{ID: "1", Front: "f", Back: "b"}})
	_ = repo.Replace(ctx, []core.Flashcard{{ID: "2", Front: "f2", Back: "b2"}})

	cards, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "2" {
		t.Errorf("Replace must overwrite the whole slot, got %+v", cards)
	}

	// No temp files may survive an atomic write.
	entries, _ := os.ReadDir(repo.Path)
	for _, e := range entries {
		if e.Name() != SlotFile {
			t.Errorf("leftover file after atomic write: %s", e.Name())
		}
	}
}

func TestInitialize_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	repo := NewRepository(Config{Path: missing, MustExist: true})
	if err := repo.Initialize(context.Background()); err == nil {
		t.Error("MustExist must reject a missing directory")
	}
}
