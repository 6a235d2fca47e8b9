// Package bucket stores finished artifacts in an S3-compatible object store
// over plain HTTP. Object URLs are deterministic from bucket, region and key.
package bucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

var _ port.ArtifactStore = (*Store)(nil)

const (
	providerName   = "artifact storage"
	defaultTimeout = 120 * time.Second
)

type Store struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New builds a store rooted at endpoint. When endpoint is empty, the
// virtual-hosted S3 URL for bucket and region is used; either way the object
// URL is baseURL + "/" + key.
func New(endpoint, bucketName, region, token string) *Store {
	base := strings.TrimRight(endpoint, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucketName, region)
	}
	return &Store{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    base,
		token:      token,
	}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objectURL := s.baseURL + "/" + strings.TrimLeft(key, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.ContentLength = int64(len(data))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: providerName, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return "", &domain.ProviderError{Provider: providerName, Status: resp.StatusCode, Detail: string(body)}
	}
	return objectURL, nil
}
