// Package music wraps the synchronous music generation provider.
package music

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

var _ port.MusicGenerator = (*Client)(nil)

const (
	providerName      = "music provider"
	defaultTimeout    = 180 * time.Second
	errorSnippetLimit = 400
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Prompt       string `json:"prompt"`
	DurationMs   int    `json:"music_length_ms"`
	Instrumental bool   `json:"instrumental"`
}

func (c *Client) GenerateMusic(ctx context.Context, prompt string, durationMs int, instrumental bool) ([]byte, error) {
	body, err := json.Marshal(generateRequest{
		Prompt:       prompt,
		DurationMs:   durationMs,
		Instrumental: instrumental,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/music", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: providerName, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{Provider: providerName, Detail: "read response: " + err.Error()}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := string(respBytes)
		if len(snippet) > errorSnippetLimit {
			snippet = snippet[:errorSnippetLimit] + "..."
		}
		return nil, &domain.ProviderError{Provider: providerName, Status: resp.StatusCode, Detail: snippet}
	}
	if len(respBytes) == 0 {
		return nil, &domain.ProviderError{Provider: providerName, Detail: "empty audio response"}
	}
	return respBytes, nil
}
