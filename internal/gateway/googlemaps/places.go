package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"healthspot/pkg/geo"
)

// Place is the client-side shape of a Places API result, shared by nearby
// search, text search, and place details.
type Place struct {
	PlaceID          string
	Name             string
	Address          string
	Location         geo.LatLng
	Types            []string
	Rating           float64
	PriceLevel       int
	UserRatingsTotal int
	PhoneNumber      string
	Website          string
	BusinessStatus   string
	Reviews          []PlaceReview
}

type PlaceReview struct {
	AuthorName string
	Rating     float64
	Text       string
}

type NearbySearchRequest struct {
	Location geo.LatLng
	Radius   int
	Type     string
	Keyword  string
}

type TextSearchRequest struct {
	Query string
	Type  string
}

type placePayload struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
	PriceLevel       int      `json:"price_level"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PhoneNumber      string   `json:"formatted_phone_number"`
	Website          string   `json:"website"`
	BusinessStatus   string   `json:"business_status"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Reviews []struct {
		AuthorName string  `json:"author_name"`
		Rating     float64 `json:"rating"`
		Text       string  `json:"text"`
	} `json:"reviews"`
}

func (p placePayload) toPlace() Place {
	place := Place{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Address:          p.Vicinity,
		Location:         geo.LatLng{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		Types:            p.Types,
		Rating:           p.Rating,
		PriceLevel:       p.PriceLevel,
		UserRatingsTotal: p.UserRatingsTotal,
		PhoneNumber:      p.PhoneNumber,
		Website:          p.Website,
		BusinessStatus:   p.BusinessStatus,
	}
	if place.Address == "" {
		place.Address = p.FormattedAddress
	}
	for _, r := range p.Reviews {
		place.Reviews = append(place.Reviews, PlaceReview{
			AuthorName: r.AuthorName,
			Rating:     r.Rating,
			Text:       r.Text,
		})
	}
	return place
}

type placesSearchResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []placePayload `json:"results"`
}

type placeDetailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       placePayload `json:"result"`
}

func (c *Client) NearbySearch(ctx context.Context, req NearbySearchRequest) ([]Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", req.Location.Lat, req.Location.Lng))
	params.Set("radius", strconv.Itoa(req.Radius))
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}

	var resp placesSearchResponse
	if err := c.getJSON(ctx, "/maps/api/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusError(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, r.toPlace())
	}
	return places, nil
}

func (c *Client) TextSearch(ctx context.Context, req TextSearchRequest) ([]Place, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	if req.Type != "" {
		params.Set("type", req.Type)
	}

	var resp placesSearchResponse
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusError(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, r.toPlace())
	}
	return places, nil
}

// PlaceDetails fetches a single place. Fields defaults to the full set the
// provider cache needs when empty.
func (c *Client) PlaceDetails(ctx context.Context, placeID string, fields []string) (*Place, error) {
	if len(fields) == 0 {
		fields = []string{
			"place_id", "name", "formatted_address", "geometry",
			"formatted_phone_number", "website", "type", "price_level",
			"rating", "user_ratings_total", "business_status",
		}
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", strings.Join(fields, ","))

	var resp placeDetailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" || resp.Status == "NOT_FOUND" {
		return nil, ErrZeroResults
	}
	if err := statusError(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	place := resp.Result.toPlace()
	if place.PlaceID == "" {
		place.PlaceID = placeID
	}
	return &place, nil
}
