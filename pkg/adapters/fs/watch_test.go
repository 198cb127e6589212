package fs

import (
	"context"
	"testing"
	"time"

	"github.com/webflash/webflash/pkg/core"
)

func TestWatch_EmitsOnSlotReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := repo.Replace(ctx, []core.Flashcard{{ID: "1", Front: "f", Back: "b"}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		if ev.Type != core.EventCreate && ev.Type != core.EventModify {
			t.Errorf("unexpected event type %q", ev.Type)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for slot event")
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// A buffered event may still arrive; the channel must
			// close right after.
			if _, open := <-events; open {
				t.Error("channel must close after cancellation")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}
