// Package googlemaps is a thin client for the Google Maps web services used
// by the provider search: Geocoding, Places (nearby/text/details), the Routes
// API, and Static Maps URL generation.
package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrZeroResults     = errors.New("googlemaps: no results returned")
	ErrQuotaExceeded   = errors.New("googlemaps: query quota exceeded")
	ErrRequestDenied   = errors.New("googlemaps: request denied")
	ErrInvalidRequest  = errors.New("googlemaps: invalid request")
	ErrNotConfigured   = errors.New("googlemaps: API key is not configured")
	ErrUnknownResponse = errors.New("googlemaps: unknown error")
)

const (
	defaultBaseURL   = "https://maps.googleapis.com"
	defaultRoutesURL = "https://routes.googleapis.com"
)

type Client struct {
	APIKey     string
	BaseURL    string
	RoutesURL  string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		RoutesURL:  defaultRoutesURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured reports whether the client has an API key. Callers surface
// this through health endpoints instead of failing at startup.
func (c *Client) IsConfigured() bool {
	return c.APIKey != ""
}

// getJSON issues a GET against a maps.googleapis.com path and decodes the
// body into out. The API key is appended to the query.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	params.Set("key", c.APIKey)
	endpoint := c.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("googlemaps: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("googlemaps: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("googlemaps: failed to decode response: %w", err)
	}
	return nil
}

// statusError maps a Maps web-service status string onto a sentinel error.
// ZERO_RESULTS is not an error; callers get an empty result set instead.
func statusError(status, errorMessage string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		return ErrQuotaExceeded
	case "REQUEST_DENIED":
		if errorMessage != "" {
			return fmt.Errorf("%w: %s", ErrRequestDenied, errorMessage)
		}
		return ErrRequestDenied
	case "INVALID_REQUEST":
		return ErrInvalidRequest
	default:
		if errorMessage != "" {
			return fmt.Errorf("%w: %s: %s", ErrUnknownResponse, status, errorMessage)
		}
		return fmt.Errorf("%w: %s", ErrUnknownResponse, status)
	}
}
