package geo

import (
	"math"
	"testing"
)

func TestGeodesicMilesKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // miles
		tol                    float64
	}{
		// Boston -> New York City
		{"boston to nyc", 42.3601, -71.0589, 40.7128, -74.0060, 190.0, 3.0},
		// Pinkham Notch, NH -> Boston
		{"pinkham to boston", 44.2570, -71.2530, 42.3601, -71.0589, 131.0, 3.0},
		{"same point", 42.0, -71.0, 42.0, -71.0, 0.0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeodesicMiles(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("expected ~%.1f miles, got %.2f", tt.want, got)
			}
		})
	}
}

func TestGeodesicMilesSymmetry(t *testing.T) {
	a := GeodesicMiles(42.3601, -71.0589, 40.7128, -74.0060)
	b := GeodesicMiles(40.7128, -74.0060, 42.3601, -71.0589)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance should be symmetric: %f vs %f", a, b)
	}
}

func TestEstimateDriving(t *testing.T) {
	dist, dur := EstimateDriving(100)

	wantDist := 100 * DrivingBeta
	if math.Abs(dist-wantDist) > 1e-9 {
		t.Errorf("expected distance %f, got %f", wantDist, dist)
	}
	wantDur := wantDist / AverageSpeed
	if math.Abs(dur-wantDur) > 1e-9 {
		t.Errorf("expected duration %f, got %f", wantDur, dur)
	}
}
