// Package postcodesio is a client for the free postcodes.io lookup service,
// used as a geocoding fallback for UK postcodes.
package postcodesio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.postcodes.io"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type Result struct {
	Latitude      float64
	Longitude     float64
	Postcode      string
	AdminDistrict string
}

type lookupResponse struct {
	Status int `json:"status"`
	Result *struct {
		Latitude      float64 `json:"latitude"`
		Longitude     float64 `json:"longitude"`
		Postcode      string  `json:"postcode"`
		AdminDistrict string  `json:"admin_district"`
	} `json:"result"`
}

// Lookup resolves a UK postcode. A nil result with a nil error means the
// postcode is unknown to the service.
func (c *Client) Lookup(ctx context.Context, postcode string) (*Result, error) {
	endpoint := c.BaseURL + "/postcodes/" + url.PathEscape(postcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postcodesio: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("postcodesio: unexpected status %d", resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("postcodesio: failed to decode response: %w", err)
	}
	if parsed.Result == nil {
		return nil, nil
	}

	return &Result{
		Latitude:      parsed.Result.Latitude,
		Longitude:     parsed.Result.Longitude,
		Postcode:      parsed.Result.Postcode,
		AdminDistrict: parsed.Result.AdminDistrict,
	}, nil
}
