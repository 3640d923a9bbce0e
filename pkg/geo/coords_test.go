package geo

import (
	"math"
	"testing"
)

func TestIsValidCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		lng   float64
		valid bool
	}{
		{"san francisco", 37.7749, -122.4194, true},
		{"equator origin", 0, 0, true},
		{"north pole", 90, 0, true},
		{"date line", 0, 180, true},
		{"latitude too high", 90.1, 0, false},
		{"latitude too low", -91, 0, false},
		{"longitude too high", 0, 180.5, false},
		{"longitude too low", 0, -181, false},
		{"nan latitude", math.NaN(), 0, false},
		{"nan longitude", 0, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCoordinates(tt.lat, tt.lng); got != tt.valid {
				t.Errorf("IsValidCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.valid)
			}
		})
	}
}

func TestBoxAround(t *testing.T) {
	box := BoxAround(37.7749, -122.4194, 5000)

	if box.MinLat >= box.MaxLat {
		t.Fatalf("expected MinLat < MaxLat, got %v >= %v", box.MinLat, box.MaxLat)
	}
	if box.MinLng >= box.MaxLng {
		t.Fatalf("expected MinLng < MaxLng, got %v >= %v", box.MinLng, box.MaxLng)
	}

	// 5 km should span roughly 0.045 degrees of latitude each way.
	latSpan := box.MaxLat - box.MinLat
	if latSpan < 0.08 || latSpan > 0.1 {
		t.Errorf("latitude span %v outside expected range", latSpan)
	}

	// Longitude degrees shrink at this latitude, so the lng span is wider.
	lngSpan := box.MaxLng - box.MinLng
	if lngSpan <= latSpan {
		t.Errorf("expected lng span %v > lat span %v at latitude 37.77", lngSpan, latSpan)
	}
}

func TestBoundsOf(t *testing.T) {
	points := []LatLng{
		{Lat: 10, Lng: 20},
		{Lat: -5, Lng: 25},
		{Lat: 7, Lng: 15},
		{Lat: 91, Lng: 500}, // invalid, must be skipped
	}

	b := BoundsOf(points)
	if b == nil {
		t.Fatal("expected bounds, got nil")
	}
	if b.North != 10 || b.South != -5 || b.East != 25 || b.West != 15 {
		t.Errorf("unexpected bounds: %+v", b)
	}

	if got := BoundsOf([]LatLng{{Lat: 200, Lng: 0}}); got != nil {
		t.Errorf("expected nil bounds for all-invalid input, got %+v", got)
	}
}
