package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webflash/webflash"
	"github.com/webflash/webflash/pkg/core"
)

// TestLifecycleFS drives a full collection lifecycle against the slot
// file adapter: create, list, review, tag, delete, export.
func TestLifecycleFS(t *testing.T) {
	runLifecycle(t, webflash.AdapterFS)
}

// TestLifecycleBolt drives the same lifecycle against the BoltDB adapter.
func TestLifecycleBolt(t *testing.T) {
	runLifecycle(t, webflash.AdapterBolt)
}

func runLifecycle(t *testing.T, adapter string) {
	tempDir := t.TempDir()
	ctx := context.Background()

	svc, err := webflash.New(tempDir, webflash.WithAdapter(adapter))
	require.NoError(t, err)

	// Create two cards, one tagged.
	source := &core.Source{Title: "Go spec", URL: "https://go.dev/ref/spec"}
	first, err := svc.Create(ctx, "What is a goroutine?", "A lightweight thread managed by the runtime.", source, []string{"go", "concurrency"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := svc.Create(ctx, "What does defer do?", "Schedules a call to run when the function returns.", nil, nil)
	require.NoError(t, err)

	// A fresh service over the same directory sees both cards.
	svc2, err := webflash.New(tempDir, webflash.WithAdapter(adapter))
	require.NoError(t, err)

	cards, err := svc2.List(ctx, core.Filter{})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, first.ID, cards[0].ID, "creation order survives reload")
	assert.Equal(t, second.ID, cards[1].ID)

	// Filters.
	tagged, err := svc2.List(ctx, core.Filter{Tags: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, first.ID, tagged[0].ID)

	untagged, err := svc2.List(ctx, core.Filter{Untagged: true})
	require.NoError(t, err)
	require.Len(t, untagged, 1)
	assert.Equal(t, second.ID, untagged[0].ID)

	// Review state round-trips.
	reviewed, err := svc2.MarkReviewed(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, reviewed.LastReviewed)

	got, ok, err := svc2.Get(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, got.LastReviewed)

	// Export carries everything.
	data, err := core.ExportJSON(cards)
	require.NoError(t, err)
	var exported []core.Flashcard
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Len(t, exported, 2)

	// Delete is persisted.
	deleted, err := svc2.Delete(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	svc3, err := webflash.New(tempDir, webflash.WithAdapter(adapter))
	require.NoError(t, err)
	remaining, err := svc3.List(ctx, core.Filter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, first.ID, remaining[0].ID)
}

// TestMustExistRefusesMissingDir covers the explicit-init path: with
// MustExist set, a missing data directory is an error instead of being
// created silently.
func TestMustExistRefusesMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := webflash.New(missing, webflash.WithMustExist(true))
	require.Error(t, err)

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "directory should not be created")
}

// TestLegacySlotIsReadable seeds a slot file the way older exports wrote
// it (the JSON array double-encoded as a string, numeric ids) and checks
// the collection loads and the ids behave as strings from then on.
func TestLegacySlotIsReadable(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	legacy := `"[{\"id\":1740000000123.42,\"front\":\"F\",\"back\":\"B\",\"created\":\"2025-02-19T21:20:00.123Z\",\"tags\":[]}]"`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "flashcards.json"), []byte(legacy), 0644))

	svc, err := webflash.New(tempDir)
	require.NoError(t, err)

	cards, err := svc.List(ctx, core.Filter{})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "1740000000123.42", cards[0].ID)

	// Deleting by the string form of the numeric id works.
	deleted, err := svc.Delete(ctx, "1740000000123.42")
	require.NoError(t, err)
	assert.True(t, deleted)
}
