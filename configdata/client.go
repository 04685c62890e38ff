// Package configdata fetches the initial application data served by the
// Enterprise Search config endpoint.
package configdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Errors
var (
	ErrFetchFailed      = errors.New("config data fetch failed")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMalformedPayload = errors.New("malformed config data payload")
)

// maxPayloadSize bounds the config data response body
const maxPayloadSize = 1 << 20 // 1MB

// Getter issues an authenticated GET request and returns the response body.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Client is a Getter backed by net/http.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	authorization string
}

// NewClient creates a client for the backend at baseURL.
// A zero timeout means requests never time out on their own.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithAuthorization returns a copy of the client that sends the given
// Authorization header value, usually forwarded from an incoming request.
func (c *Client) WithAuthorization(authorization string) *Client {
	clone := *c
	clone.authorization = authorization
	return &clone
}

// Get performs a GET request against the backend.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: HTTP %d", ErrAuthFailed, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload too large (more than %d bytes)", ErrMalformedPayload, maxPayloadSize)
	}
	return body, nil
}

// Close releases idle connections held by the client
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
