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

// defaultTemperature keeps generation near-deterministic; the prompt
// demands strict JSON and creative sampling only breaks it.
const defaultTemperature = 0.01

// CompletionClient calls the chat-completion HTTP service.
type CompletionClient struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the
// generated text. A non-2xx status or transport failure is reported as
// core.ErrExternalService; there is no retry.
func (c *CompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	temp := c.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}
	body, err := json.Marshal(completionRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("api-key", c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion call failed: %v", core.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: completion service returned %s", core.ErrExternalService, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read completion response: %v", core.ErrExternalService, err)
	}

	var out completionResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: completion response is not JSON: %v", core.ErrParse, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response has no choices", core.ErrParse)
	}
	return out.Choices[0].Message.Content, nil
}

func (c *CompletionClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
