package geo

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRouterWithoutKey(t *testing.T) {
	t.Setenv("ROUTING_API_KEY", "")
	if r := NewRouter(""); r != nil {
		t.Error("expected nil router when no API key is configured")
	}
}

func TestDrivingDistanceConvertsKilometers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected api key in query, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resourceSets":[{"resources":[{"results":[{"travelDistance":160.934,"travelDuration":1.8}]}]}]}`)
	}))
	defer srv.Close()

	t.Setenv("ROUTING_API_KEY", "test-key")
	router := NewRouter(srv.URL)
	if router == nil {
		t.Fatal("expected router to be constructed")
	}

	dist, dur, err := router.DrivingDistance(context.Background(), 42.36, -71.06, 40.71, -74.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(dist-100.0) > 1e-9 {
		t.Errorf("expected 160.934 km to convert to 100 miles, got %v", dist)
	}
	if dur != 1.8 {
		t.Errorf("expected duration 1.8, got %v", dur)
	}
}

func TestDrivingDistanceEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resourceSets":[]}`)
	}))
	defer srv.Close()

	t.Setenv("ROUTING_API_KEY", "test-key")
	router := NewRouter(srv.URL)
	if _, _, err := router.DrivingDistance(context.Background(), 0, 0, 1, 1); err == nil {
		t.Error("expected error for empty routing response")
	}
}
