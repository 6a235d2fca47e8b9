// Package speech wraps the synchronous text-to-speech provider.
package speech

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

var _ port.SpeechSynthesizer = (*Client)(nil)

const (
	providerName      = "speech provider"
	defaultTimeout    = 120 * time.Second
	errorSnippetLimit = 400
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesize request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
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
