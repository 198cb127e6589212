package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/webflash/webflash/pkg/core"
)

// EmbeddingClient calls the text/image vectorization endpoints. Both
// return a single embedding vector per request.
type EmbeddingClient struct {
	Endpoint   string // base URL; /vectorizeText and /vectorizeImage hang off it
	APIKey     string
	HTTPClient *http.Client
}

type embeddingResponse struct {
	Vector []float64 `json:"vector"`
}

// VectorizeText embeds a text snippet.
func (c *EmbeddingClient) VectorizeText(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding request: %w", err)
	}
	return c.post(ctx, c.Endpoint+"/vectorizeText", "application/json", bytes.NewReader(body))
}

// VectorizeImage embeds raw image bytes.
func (c *EmbeddingClient) VectorizeImage(ctx context.Context, image []byte) ([]float64, error) {
	return c.post(ctx, c.Endpoint+"/vectorizeImage", "application/octet-stream", bytes.NewReader(image))
}

func (c *EmbeddingClient) post(ctx context.Context, url, contentType string, body io.Reader) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.APIKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding call failed: %v", core.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: embedding service returned %s", core.ErrExternalService, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read embedding response: %v", core.ErrExternalService, err)
	}

	var out embeddingResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: embedding response is not JSON: %v", core.ErrParse, err)
	}
	if len(out.Vector) == 0 {
		return nil, fmt.Errorf("%w: embedding response carries no vector", core.ErrParse)
	}
	return out.Vector, nil
}

func (c *EmbeddingClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// FetchImage downloads raw image bytes for embedding.
func FetchImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: image fetch failed: %v", core.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: image fetch returned %s", core.ErrExternalService, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
