package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Geocoder resolves a postal code to coordinates through a
// Nominatim-compatible search endpoint. Used only when the local
// gazetteer misses; results are advisory and failures degrade.
type Geocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// DefaultGeocoderURL is the public Nominatim search endpoint.
const DefaultGeocoderURL = "https://nominatim.openstreetmap.org/search"

// NewGeocoder creates a geocoding client. An empty baseURL selects the
// public endpoint.
func NewGeocoder(baseURL, userAgent string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	if userAgent == "" {
		userAgent = "lodgenet-emissions"
	}
	return &Geocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GeocodePostal looks up a postal code within a country. Returns
// false when the service has no match; error only on transport or
// protocol failures.
func (g *Geocoder) GeocodePostal(ctx context.Context, postalCode, countryCode string) (lat, lon float64, ok bool, err error) {
	q := url.Values{}
	q.Set("postalcode", postalCode)
	q.Set("country", countryCode)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, false, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, false, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false, fmt.Errorf("geocode response carried unparsable coordinates")
	}

	return lat, lon, true, nil
}
