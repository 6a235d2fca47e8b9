// Package voice wraps the voice conversion provider. Conversion uploads the
// source audio as a multipart form and returns the converted track.
package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

var _ port.VoiceConverter = (*Client)(nil)

const (
	providerName      = "voice provider"
	defaultTimeout    = 180 * time.Second
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

func (c *Client) ConvertVoice(ctx context.Context, audio []byte, filename, voiceID string) ([]byte, error) {
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	filePart, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := filePart.Write(audio); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/v1/voice-conversion/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &form)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
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
