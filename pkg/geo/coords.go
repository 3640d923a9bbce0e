package geo

import "math"

const metersPerDegreeLat = 111000.0

// IsValidLatitude reports whether lat is a usable WGS84 latitude.
func IsValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lng is a usable WGS84 longitude.
func IsValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

// IsValidCoordinates reports whether the pair lies within WGS84 ranges.
func IsValidCoordinates(lat, lng float64) bool {
	return IsValidLatitude(lat) && IsValidLongitude(lng)
}

// LatLng is a point in WGS84 degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox is a rectangular lat/lng range approximating a circular search
// radius, suitable for indexable range queries.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoxAround computes a bounding box for the given radius in meters using an
// equirectangular approximation: one degree of latitude is ~111 km and a
// degree of longitude shrinks by cos(lat).
func BoxAround(lat, lng float64, radiusMeters float64) BoundingBox {
	latRange := radiusMeters / metersPerDegreeLat
	metersPerDegreeLng := metersPerDegreeLat * math.Cos(lat*math.Pi/180)
	lngRange := radiusMeters / metersPerDegreeLng
	return BoundingBox{
		MinLat: lat - latRange,
		MaxLat: lat + latRange,
		MinLng: lng - lngRange,
		MaxLng: lng + lngRange,
	}
}

// Bounds is the viewport rectangle returned to map clients.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// BoundsOf returns the viewport covering every valid point, or nil when none
// of the points are valid.
func BoundsOf(points []LatLng) *Bounds {
	var b *Bounds
	for _, p := range points {
		if !IsValidCoordinates(p.Lat, p.Lng) {
			continue
		}
		if b == nil {
			b = &Bounds{North: p.Lat, South: p.Lat, East: p.Lng, West: p.Lng}
			continue
		}
		b.North = math.Max(b.North, p.Lat)
		b.South = math.Min(b.South, p.Lat)
		b.East = math.Max(b.East, p.Lng)
		b.West = math.Min(b.West, p.Lng)
	}
	return b
}
