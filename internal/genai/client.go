// Package genai calls an Ollama-style text-generation endpoint.
package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds the generative call. The chat responder degrades
// to its default reply when this expires.
const DefaultTimeout = 7 * time.Second

// Client implements chat.TextGenerator against a /api/generate endpoint.
type Client struct {
	http  *resty.Client
	url   string
	model string
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewClient creates a client for the given endpoint URL and model name.
func NewClient(url, model string) *Client {
	return &Client{
		http:  resty.New().SetTimeout(DefaultTimeout),
		url:   url,
		model: model,
	}
}

// Generate sends the prompt and returns the generated text. Network
// failures, non-2xx statuses, and malformed bodies all return errors;
// the caller decides how to degrade.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: c.model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generate endpoint returned %s", resp.Status())
	}
	return out.Response, nil
}
