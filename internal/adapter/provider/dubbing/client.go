// Package dubbing wraps the asynchronous video dubbing provider.
package dubbing

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

var _ port.Dubber = (*Client)(nil)

const (
	providerName = "dubbing provider"

	// Source language is always auto-detected by the provider.
	sourceLanguageAuto = "auto"

	defaultTimeout    = 60 * time.Second
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

type startDubRequest struct {
	VideoURL       string `json:"videoUrl"`
	TargetLanguage string `json:"target_lang"`
	SourceLanguage string `json:"source_lang"`
}

type startDubResponse struct {
	DubbingID string `json:"dubbing_id"`
}

func (c *Client) StartDub(ctx context.Context, videoURL, targetLanguageCode string) (string, error) {
	body, err := json.Marshal(startDubRequest{
		VideoURL:       videoURL,
		TargetLanguage: targetLanguageCode,
		SourceLanguage: sourceLanguageAuto,
	})
	if err != nil {
		return "", fmt.Errorf("marshal start-dub request: %w", err)
	}

	respBytes, _, err := c.do(ctx, http.MethodPost, "/v1/dubs", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}

	var resp startDubResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return "", &domain.ProviderError{Provider: providerName, Detail: "malformed start-dub response"}
	}
	if resp.DubbingID == "" {
		return "", &domain.ProviderError{Provider: providerName, Detail: "start-dub response missing dubbing_id"}
	}
	return resp.DubbingID, nil
}

type dubStatusResponse struct {
	Status string `json:"status"`
}

func (c *Client) DubStatus(ctx context.Context, providerJobID string) (port.DubStatus, error) {
	respBytes, _, err := c.do(ctx, http.MethodGet, "/v1/dubs/"+providerJobID, nil, "")
	if err != nil {
		return "", err
	}

	var resp dubStatusResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return "", &domain.ProviderError{Provider: providerName, Detail: "malformed dub-status response"}
	}
	return port.DubStatus(resp.Status), nil
}

func (c *Client) DubbedAudio(ctx context.Context, providerJobID, languageCode string) ([]byte, string, error) {
	path := fmt.Sprintf("/v1/dubs/%s/audio/%s", providerJobID, languageCode)
	data, contentType, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", &domain.ProviderError{Provider: providerName, Detail: "empty dubbed audio response"}
	}
	return data, contentType, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: providerName, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: providerName, Detail: "read response: " + err.Error()}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", &domain.ProviderError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Detail:   truncate(string(respBytes), errorSnippetLimit),
		}
	}
	return respBytes, resp.Header.Get("Content-Type"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
