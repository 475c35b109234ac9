// Package verifier is the HTTP client for the external cadastral verification
// service. One Verify call makes exactly one outbound request — no retries,
// no backoff.
package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable is returned when the request never produced an
// application-level response: connection refused, timeout, DNS or TLS
// failure. Callers treat it as a defined business outcome, not a bug.
var ErrUnavailable = errors.New("external service temporarily unavailable")

// Client calls the external verifier over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client (default: 10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(v *Client) {
		v.httpClient = c
	}
}

// New returns a Client that POSTs verification requests to baseURL + "/result".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// verifyRequest is the outbound payload. Field names are fixed by the
// external service's API.
type verifyRequest struct {
	CadastralNumber string  `json:"cadastral_number"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type verifyResponse struct {
	Result bool `json:"result"`
}

// Verify asks the external service to adjudicate the parcel/coordinate pair.
// A transport-level failure returns ErrUnavailable. The response body is
// decoded regardless of status code — the external service signals its
// verdict in the body, and anything else surfaces as a decode error.
func (c *Client) Verify(ctx context.Context, cadastralNumber string, latitude, longitude float64) (bool, error) {
	body, err := json.Marshal(verifyRequest{
		CadastralNumber: cadastralNumber,
		Latitude:        latitude,
		Longitude:       longitude,
	})
	if err != nil {
		return false, fmt.Errorf("verifier.Client.Verify: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/result", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("verifier.Client.Verify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("verifier.Client.Verify: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("verifier.Client.Verify: decode response: %w", err)
	}
	return out.Result, nil
}
