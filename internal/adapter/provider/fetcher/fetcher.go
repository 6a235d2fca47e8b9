// Package fetcher downloads caller-supplied remote audio with a hard size
// ceiling, so oversized payloads fail before any provider is called.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

var _ port.AudioFetcher = (*Fetcher)(nil)

const (
	providerName   = "audio fetch"
	defaultTimeout = 60 * time.Second
)

type Fetcher struct {
	httpClient *http.Client
}

func New() *Fetcher {
	return &Fetcher{httpClient: &http.Client{Timeout: defaultTimeout}}
}

func (f *Fetcher) FetchAudio(ctx context.Context, url string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: providerName, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", &domain.ProviderError{Provider: providerName, Status: resp.StatusCode, Detail: "fetch " + url}
	}

	if resp.ContentLength > maxBytes {
		return nil, "", &domain.ProviderError{
			Provider: providerName,
			Detail:   fmt.Sprintf("source audio is %d bytes, exceeds %d byte limit", resp.ContentLength, maxBytes),
		}
	}

	// Read one byte past the limit to distinguish "exactly at the limit"
	// from "over it" when the server omits Content-Length.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: providerName, Detail: "read body: " + err.Error()}
	}
	if int64(len(data)) > maxBytes {
		return nil, "", &domain.ProviderError{
			Provider: providerName,
			Detail:   fmt.Sprintf("source audio exceeds %d bytes", maxBytes),
		}
	}
	return data, resp.Header.Get("Content-Type"), nil
}
