package googlemaps

import (
	"fmt"
	"net/url"
	"strconv"

	"healthspot/pkg/geo"
)

// StaticMapURL builds a Static Maps image URL centered on the given point
// with up to ten numbered provider markers. Markers beyond ten are dropped
// to keep the URL within limits.
func (c *Client) StaticMapURL(center geo.LatLng, markers []geo.LatLng, zoom, width, height int) string {
	if !c.IsConfigured() {
		return ""
	}

	params := url.Values{}
	params.Set("center", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("zoom", strconv.Itoa(zoom))
	params.Set("size", fmt.Sprintf("%dx%d", width, height))

	limit := len(markers)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		params.Add("markers", fmt.Sprintf("color:red|label:%d|%f,%f", i+1, markers[i].Lat, markers[i].Lng))
	}

	params.Add("style", "feature:poi.medical|element:all|visibility:on|weight:1.5")
	params.Add("style", "feature:poi.business|element:labels|visibility:off")
	params.Set("key", c.APIKey)

	return c.BaseURL + "/maps/api/staticmap?" + params.Encode()
}
