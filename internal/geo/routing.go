package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Router fetches point-to-point driving distance and time from a
// distance-matrix routing service. Optional: the resolver falls back
// to linear estimation when no router is configured.
type Router struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// DefaultRouterURL is the distance-matrix endpoint of the routing
// service the distances were originally calibrated against.
const DefaultRouterURL = "https://dev.virtualearth.net/REST/v1/Routes/DistanceMatrix"

// NewRouter creates a routing client from the ROUTING_API_KEY env var.
// Returns nil if the key is not set (graceful degradation).
func NewRouter(baseURL string) *Router {
	key := os.Getenv("ROUTING_API_KEY")
	if key == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = DefaultRouterURL
	}
	return &Router{
		baseURL: baseURL,
		apiKey:  key,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type routingResponse struct {
	ResourceSets []struct {
		Resources []struct {
			Results []struct {
				TravelDistance float64 `json:"travelDistance"` // km
				TravelDuration float64 `json:"travelDuration"`
			} `json:"results"`
		} `json:"resources"`
	} `json:"resourceSets"`
}

// DrivingDistance returns the routed driving distance in miles and the
// driving duration between two coordinates. A non-success response is
// an error; callers degrade to sentinel values.
func (r *Router) DrivingDistance(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (distance, duration float64, err error) {
	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", fromLat, fromLon))
	q.Set("destinations", fmt.Sprintf("%f,%f", toLat, toLon))
	q.Set("travelMode", "driving")
	q.Set("key", r.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build routing request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var decoded routingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, 0, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if len(decoded.ResourceSets) == 0 ||
		len(decoded.ResourceSets[0].Resources) == 0 ||
		len(decoded.ResourceSets[0].Resources[0].Results) == 0 {
		return 0, 0, fmt.Errorf("routing response carried no results")
	}

	result := decoded.ResourceSets[0].Resources[0].Results[0]
	return result.TravelDistance / KmPerMile, result.TravelDuration, nil
}
