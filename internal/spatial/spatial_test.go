package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// Seoul City Hall to Gwanghwamun, roughly 1km
	d := HaversineDistance(37.5665, 126.9780, 37.5759, 126.9768)
	if d < 900 || d > 1200 {
		t.Errorf("HaversineDistance() = %v m, expected roughly 1km", d)
	}

	// Zero distance
	if d := HaversineDistance(37.5665, 126.9780, 37.5665, 126.9780); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestTrackDistance(t *testing.T) {
	points := [][2]float64{
		{37.5665, 126.9780},
		{37.5700, 126.9780},
		{37.5700, 126.9820},
	}

	total := TrackDistance(points)
	leg1 := HaversineDistance(37.5665, 126.9780, 37.5700, 126.9780)
	leg2 := HaversineDistance(37.5700, 126.9780, 37.5700, 126.9820)
	if math.Abs(total-(leg1+leg2)) > 1e-9 {
		t.Errorf("TrackDistance() = %v, want %v", total, leg1+leg2)
	}

	if TrackDistance(nil) != 0 {
		t.Error("TrackDistance(nil) should be 0")
	}
	if TrackDistance(points[:1]) != 0 {
		t.Error("TrackDistance(single point) should be 0")
	}
}

func TestGeohash_RoundTrip(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     string
	}{
		{37.5665, 126.9780, "wydm9qy"},
		{0, 0, "7zzzzzz"},
		{-33.8688, 151.2093, "r3gx2f7"},
	}

	for _, tt := range tests {
		got := EncodeGeohash(tt.lat, tt.lon, 7)
		if got != tt.want {
			t.Errorf("EncodeGeohash(%v, %v, 7) = %q, want %q", tt.lat, tt.lon, got, tt.want)
		}

		lat, lon := DecodeGeohash(got)
		// Precision 7 cells are ~150m, so centers should be within ~.002 degrees
		if math.Abs(lat-tt.lat) > 0.002 || math.Abs(lon-tt.lon) > 0.002 {
			t.Errorf("DecodeGeohash(%q) = (%v, %v), want near (%v, %v)", got, lat, lon, tt.lat, tt.lon)
		}
	}
}

func TestEncodeGeohash_PrecisionClamped(t *testing.T) {
	if got := EncodeGeohash(37.5665, 126.9780, 0); len(got) != 1 {
		t.Errorf("precision 0 should clamp to 1, got %q", got)
	}
	if got := EncodeGeohash(37.5665, 126.9780, 20); len(got) != 12 {
		t.Errorf("precision 20 should clamp to 12, got %q", got)
	}
}
