package googlemaps

import (
	"context"
	"net/url"

	"healthspot/pkg/geo"
)

type GeocodeRequest struct {
	Address string
	// Components is a pipe-separated component filter, e.g. "country:US".
	Components string
}

type GeocodeResult struct {
	FormattedAddress string
	Location         geo.LatLng
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address string to coordinates. An empty result slice
// with a nil error means the service had nothing for the query.
func (c *Client) Geocode(ctx context.Context, req GeocodeRequest) ([]GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", req.Address)
	if req.Components != "" {
		params.Set("components", req.Components)
	}

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusError(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	results := make([]GeocodeResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			Location:         geo.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		})
	}
	return results, nil
}
