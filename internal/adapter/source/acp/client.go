// Package acp implements the job source's callback API: accept/reject a
// proposed job, deliver the fulfillment result, and report an evaluation
// verdict.
package acp

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

var _ port.JobSource = (*Client)(nil)

const (
	defaultTimeout    = 30 * time.Second
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

type responsePayload struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason,omitempty"`
}

func (c *Client) AcceptOrReject(ctx context.Context, jobID string, accept bool, reason string) error {
	return c.post(ctx, fmt.Sprintf("/jobs/%s/response", jobID), responsePayload{
		Accept: accept,
		Reason: reason,
	})
}

func (c *Client) Deliver(ctx context.Context, jobID string, d domain.Deliverable) error {
	return c.post(ctx, fmt.Sprintf("/jobs/%s/deliver", jobID), d)
}

type evaluationPayload struct {
	Verdict bool   `json:"verdict"`
	Message string `json:"message"`
}

func (c *Client) Evaluate(ctx context.Context, jobID string, verdict bool, message string) error {
	return c.post(ctx, fmt.Sprintf("/jobs/%s/evaluate", jobID), evaluationPayload{
		Verdict: verdict,
		Message: message,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("job source call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLimit))
		return fmt.Errorf("job source returned status %d: %s", resp.StatusCode, string(respBytes))
	}
	return nil
}
