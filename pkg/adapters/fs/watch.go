package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/webflash/webflash/pkg/core"
)

// debounceWindow collapses the write+rename burst of one atomic slot
// replacement into a single event.
const debounceWindow = 50 * time.Millisecond

// Watch observes external writes to the collection slot and emits one
// event per settled change until ctx is cancelled. This is how a
// management surface stays in sync with captures performed by another
// process (the storage.onChanged analogue).
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory, not the file: atomic rename replaces the
	// file node, which would silently detach a file-level watch.
	if err := watcher.Add(r.Path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	events := make(chan core.Event, 16)

	go func() {
		defer watcher.Close()
		defer close(events)

		var pending *core.Event
		timer := time.NewTimer(debounceWindow)
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != SlotFile {
					continue
				}
				e := classify(ev)
				pending = &e
				timer.Reset(debounceWindow)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if r.config.Logger != nil {
					r.config.Logger.Warn("watch error", "error", err)
				}

			case <-timer.C:
				if pending == nil {
					continue
				}
				select {
				case events <- *pending:
				default:
					// Slow consumer; drop rather than block the loop.
				}
				pending = nil
			}
		}
	}()

	return events, nil
}

func classify(ev fsnotify.Event) core.Event {
	typ := core.EventModify
	switch {
	case ev.Op.Has(fsnotify.Create):
		typ = core.EventCreate
	case ev.Op.Has(fsnotify.Remove):
		typ = core.EventDelete
	}
	return core.Event{Type: typ, Timestamp: time.Now().Unix()}
}
