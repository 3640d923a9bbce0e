// Package nominatim is a client for the OpenStreetMap Nominatim search
// service, the last free geocoding fallback in the postal-code chain.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim's usage policy requires an identifying User-Agent.
const userAgent = "HealthSpot/1.0"

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
	Latitude    float64
	Longitude   float64
	DisplayName string
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// SearchPostalCode looks up a postal code, optionally constrained to a
// country code. An empty slice means no match.
func (c *Client) SearchPostalCode(ctx context.Context, postalCode, country string) ([]Result, error) {
	params := url.Values{}
	params.Set("postalcode", postalCode)
	params.Set("format", "json")
	if country != "" {
		params.Set("countrycodes", country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var parsed []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("nominatim: failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(parsed))
	for _, r := range parsed {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		results = append(results, Result{Latitude: lat, Longitude: lng, DisplayName: r.DisplayName})
	}
	return results, nil
}
