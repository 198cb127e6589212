// Package relay dispatches the action-tagged requests exchanged between
// the capture surface, the coordinator, and the management surface.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/webflash/webflash/pkg/core"
	"github.com/webflash/webflash/pkg/pipeline"
)

// Actions understood by the handler.
const (
	// ActionCreateFlashcard carries highlighted text; the caller's UI
	// prompts for front/back/tags and follows up with saveFlashcard.
	ActionCreateFlashcard = "createFlashcard"

	// ActionSaveFlashcard persists one completed flashcard.
	ActionSaveFlashcard = "saveFlashcard"

	// ActionExtractContent triggers the generation pipeline for a page.
	// Fire-and-forget: the pipeline persists its own results and the
	// completion is reported out-of-band.
	ActionExtractContent = "extractContent"
)

// Request is an action-tagged message. Fields beyond Action are
// populated per action.
type Request struct {
	Action string `json:"action"`

	// createFlashcard
	Text string `json:"text,omitempty"`

	// saveFlashcard
	Front  string       `json:"front,omitempty"`
	Back   string       `json:"back,omitempty"`
	Source *core.Source `json:"source,omitempty"`
	Tags   []string     `json:"tags,omitempty"`

	// extractContent
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
	HTML  string `json:"html,omitempty"`
	Focus string `json:"focus,omitempty"`
}

// Response acknowledges a request.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Prefill echoes the selection text back to the capture surface's
	// create dialog (createFlashcard only).
	Prefill string `json:"prefill,omitempty"`
}

// Store is the slice of the flashcard service the relay needs.
type Store interface {
	Create(ctx context.Context, front, back string, source *core.Source, tags []string) (core.Flashcard, error)
}

// Handler routes requests to the store and the pipeline.
type Handler struct {
	Store    Store
	Pipeline *pipeline.Pipeline
	Logger   *slog.Logger

	// Notify, when set, receives each pipeline result (the
	// user-visible completion alert). Called from the pipeline
	// goroutine.
	Notify func(pipeline.Result)

	inflight sync.WaitGroup
}

// Handle dispatches one request and returns its acknowledgment. Unknown
// actions yield a failure response, never a panic.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionCreateFlashcard:
		return Response{Success: true, Prefill: strings.TrimSpace(req.Text)}

	case ActionSaveFlashcard:
		_, err := h.Store.Create(ctx, req.Front, req.Back, req.Source, req.Tags)
		if err != nil {
			return Response{Success: false, Error: err.Error()}
		}
		return Response{Success: true}

	case ActionExtractContent:
		h.inflight.Add(1)
		go func() {
			defer h.inflight.Done()
			// The initiating context may be gone by the time the
			// pipeline finishes; the run is abandoned, not cancelled.
			res, err := h.Pipeline.Run(context.WithoutCancel(ctx), pipeline.Capture{
				Title: req.Title,
				URL:   req.URL,
				HTML:  req.HTML,
			}, req.Focus)
			if err != nil {
				h.logger().Error("capture pipeline failed", "url", req.URL, "error", err)
			}
			if h.Notify != nil {
				h.Notify(res)
			}
		}()
		return Response{Success: true}

	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown action %q", req.Action)}
	}
}

// HandleJSON decodes a raw message, dispatches it, and encodes the ack.
func (h *Handler) HandleJSON(ctx context.Context, raw []byte) []byte {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		out, _ := json.Marshal(Response{Success: false, Error: "malformed request: " + err.Error()})
		return out
	}
	out, _ := json.Marshal(h.Handle(ctx, req))
	return out
}

// Wait blocks until all fire-and-forget pipelines have finished.
func (h *Handler) Wait() {
	h.inflight.Wait()
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
