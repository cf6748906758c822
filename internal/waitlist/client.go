// Package waitlist is the HTTP client for the growth waitlist service.
package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	client *http.Client
}

// NewClient returns a client. A zero timeout leaves the request bounded only
// by the caller's context and the transport defaults.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP wraps an existing http.Client.
func NewClientWithHTTP(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{client: hc}
}

// Join posts req to baseURL+JoinPath. Any 2xx status is success; the body is
// decoded on a best-effort basis and never causes a failure.
func (c *Client) Join(ctx context.Context, baseURL string, req SubmissionRequest) (*JoinResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	target := joinURL(baseURL, JoinPath)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return nil, &ApplicationError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
			Body:       string(body),
		}
	}

	result := &JoinResponse{}
	_ = json.Unmarshal(body, result)
	result.StatusCode = resp.StatusCode

	return result, nil
}

// Verify asks the service whether email has been invited.
func (c *Client) Verify(ctx context.Context, baseURL, email string) (*VerifyResponse, error) {
	target := joinURL(baseURL, VerifyPath+url.PathEscape(email))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ApplicationError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
			Body:       string(body),
		}
	}

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// joinURL concatenates base and path, dropping a trailing slash on base so
// configured URLs like "http://localhost:8000/" still work.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
