package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/webflash/webflash/pkg/pipeline"
)

var (
	captureFile  string
	captureTitle string
	captureFocus string
)

var captureCmd = &cobra.Command{
	Use:   "capture [url]",
	Short: "Generate flashcards from a web page",
	Long: `Capture fetches a page (or reads it from --file), extracts its text and
images, asks the completion service for flashcard drafts, pairs each draft with
the best-matching page image, and saves the batch.

The completion and embedding endpoints come from the config file; their API
keys from ` + "WEBFLASH_COMPLETION_API_KEY and WEBFLASH_EMBEDDING_API_KEY" + `.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}
		if cfg.Completion.Endpoint == "" {
			fatal("No completion endpoint configured", fmt.Errorf("set completion.endpoint in the config file or %s", "WEBFLASH_COMPLETION_ENDPOINT"))
		}

		ctx := context.Background()
		httpClient := &http.Client{Timeout: 60 * time.Second}

		capture, err := buildCapture(ctx, httpClient, args)
		if err != nil {
			fatal("Failed to load page", err)
		}

		p := &pipeline.Pipeline{
			Completion: &pipeline.CompletionClient{
				Endpoint:   cfg.Completion.Endpoint,
				APIKey:     cfg.Completion.APIKey,
				Model:      cfg.Completion.Model,
				HTTPClient: httpClient,
			},
			Embedding: &pipeline.EmbeddingClient{
				Endpoint:   cfg.Embedding.Endpoint,
				APIKey:     cfg.Embedding.APIKey,
				HTTPClient: httpClient,
			},
			Store:      svc,
			HTTPClient: httpClient,
			Logger:     slog.Default(),
		}

		result, err := p.Run(ctx, capture, captureFocus)
		if err != nil {
			fatal("Capture failed", err)
		}
		switch result.State {
		case pipeline.StateCompleted:
			fmt.Printf("Saved %d flashcard(s) from %s\n", result.Saved, capture.Title)
		case pipeline.StateCompletedEmpty:
			fmt.Println("The page produced no flashcards.")
		}
	},
}

// buildCapture assembles the pipeline input from either a fetched URL or
// a local HTML file.
func buildCapture(ctx context.Context, client *http.Client, args []string) (pipeline.Capture, error) {
	var capture pipeline.Capture

	switch {
	case captureFile != "":
		data, err := os.ReadFile(captureFile)
		if err != nil {
			return capture, err
		}
		capture.HTML = string(data)
		capture.URL = "file://" + captureFile
	case len(args) == 1:
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, args[0], nil)
		if err != nil {
			return capture, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return capture, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return capture, fmt.Errorf("unexpected status %s fetching %s", resp.Status, args[0])
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return capture, err
		}
		capture.HTML = string(data)
		capture.URL = args[0]
	default:
		return capture, fmt.Errorf("a url argument or --file is required")
	}

	capture.Title = captureTitle
	if capture.Title == "" {
		capture.Title = pipeline.ExtractTitle(capture.HTML)
	}
	if capture.Title == "" {
		capture.Title = capture.URL
	}
	return capture, nil
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().StringVar(&captureFile, "file", "", "Read page HTML from a local file instead of fetching a url")
	captureCmd.Flags().StringVar(&captureTitle, "title", "", "Override the source title")
	captureCmd.Flags().StringVar(&captureFocus, "focus", "", "Hint narrowing what the flashcards should cover")
}
