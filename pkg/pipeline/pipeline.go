// Package pipeline turns a captured page into persisted flashcards:
// extract text and images, generate Q/A drafts via the completion
// service, match each draft against the page's image embeddings, and
// hand the finished batch to the store.
//
// The pipeline deliberately favors partial success over total failure:
// an external call that fails degrades its own step (a skipped image, an
// empty draft set) instead of aborting the run. No external call is
// retried.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/webflash/webflash/pkg/core"
	"github.com/webflash/webflash/pkg/vector"
)

// State is the terminal state of a pipeline run.
type State string

const (
	// StateCompleted: at least one flashcard was generated and saved.
	StateCompleted State = "completed"

	// StateCompletedEmpty: the run finished but produced no drafts.
	// This is a reportable completion, not an error; the user must see
	// that the action finished rather than hung.
	StateCompletedEmpty State = "completed_empty"

	// StateAborted: persistence itself failed; nothing was saved.
	StateAborted State = "aborted"
)

// Result summarizes a pipeline run.
type Result struct {
	State State
	Saved int
}

// Store is the slice of the flashcard service the pipeline needs.
type Store interface {
	BulkCreate(ctx context.Context, drafts []core.Draft, source *core.Source) ([]core.Flashcard, error)
}

// imageEmbedding pairs a page image with its embedding vector. It lives
// only for the duration of one run and is never persisted.
type imageEmbedding struct {
	url    string
	vector []float64
}

// Pipeline orchestrates one page-extraction request end to end.
type Pipeline struct {
	Completion *CompletionClient
	Embedding  *EmbeddingClient
	Store      Store
	HTTPClient *http.Client // used for raw image fetches
	Logger     *slog.Logger
}

// Run executes the full pipeline for one capture. focus is an optional
// user hint narrowing what the flashcards should cover.
//
// The returned error is non-nil only in the Aborted state; degraded
// steps are logged and absorbed.
func (p *Pipeline) Run(ctx context.Context, capture Capture, focus string) (Result, error) {
	logger := p.logger()

	// 1. Extract.
	text := ExtractText(capture.HTML)
	images := capture.Images
	if images == nil {
		images = ExtractImages(capture.HTML)
	}
	logger.Debug("extracted page", "url", capture.URL, "images", len(images))

	// 2. Embed images. Individual failures skip that image only.
	embeddings := p.embedImages(ctx, images)

	// 3+4. Generate drafts. Any failure here degrades to zero drafts.
	drafts := p.generateDrafts(ctx, text, focus)
	if len(drafts) == 0 {
		logger.Info("capture produced no flashcards", "url", capture.URL)
		return Result{State: StateCompletedEmpty}, nil
	}

	// 5. Attach best-matching images.
	for i := range drafts {
		p.attachImage(ctx, &drafts[i], embeddings)
	}

	// 6. Finalize and persist as one batch.
	source := &core.Source{Title: capture.Title, URL: capture.URL}
	saved, err := p.Store.BulkCreate(ctx, drafts, source)
	if err != nil {
		return Result{State: StateAborted}, fmt.Errorf("failed to save generated flashcards: %w", err)
	}

	logger.Info("capture completed", "url", capture.URL, "saved", len(saved))
	return Result{State: StateCompleted, Saved: len(saved)}, nil
}

// embedImages fetches and vectorizes each page image. A fetch or
// embedding failure excludes that image from the candidate set; it never
// aborts the batch.
func (p *Pipeline) embedImages(ctx context.Context, images []ImageRef) []imageEmbedding {
	var out []imageEmbedding
	for _, img := range images {
		data, err := FetchImage(ctx, p.HTTPClient, img.Src)
		if err != nil {
			p.logger().Warn("skipping image: fetch failed", "src", img.Src, "error", err)
			continue
		}
		vec, err := p.Embedding.VectorizeImage(ctx, data)
		if err != nil {
			p.logger().Warn("skipping image: embedding failed", "src", img.Src, "error", err)
			continue
		}
		out = append(out, imageEmbedding{url: img.Src, vector: vec})
	}
	return out
}

// generateDrafts calls the completion service and parses its output.
// Service or parse failures yield an empty draft set.
func (p *Pipeline) generateDrafts(ctx context.Context, text, focus string) []core.Draft {
	raw, err := p.Completion.Complete(ctx, BuildPrompt(text, focus))
	if err != nil {
		p.logger().Warn("generation failed", "error", err)
		return nil
	}
	drafts, err := ParseDrafts(raw)
	if err != nil {
		p.logger().Warn("generation output unusable", "error", err)
		return nil
	}
	return drafts
}

// attachImage embeds the draft's text and appends the best-matching
// image reference to its back. Failure to obtain the text embedding
// leaves the draft without an image.
func (p *Pipeline) attachImage(ctx context.Context, draft *core.Draft, candidates []imageEmbedding) {
	if len(candidates) == 0 {
		return
	}
	target, err := p.Embedding.VectorizeText(ctx, draft.Front+" "+draft.Back)
	if err != nil {
		p.logger().Warn("draft proceeds without image", "front", draft.Front, "error", err)
		return
	}

	cands := make([]vector.Candidate, len(candidates))
	for i, c := range candidates {
		cands[i] = vector.Candidate{Ref: c.url, Vector: c.vector}
	}
	if ref := vector.SelectBestMatch(target, cands); ref != "" {
		draft.Back += fmt.Sprintf("\n\n<br/><br/><img src=%q alt=\"Related Image\" />", ref)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
