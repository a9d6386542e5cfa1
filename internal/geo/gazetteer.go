package geo

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// GazetteerEntry is one postal-code row from a national gazetteer file.
type GazetteerEntry struct {
	PostalCode string
	City       string
	State      string
	Lat        float64
	Lon        float64
}

// Gazetteer resolves normalized postal codes to coordinates from
// flat national postal-code files, keyed by country. Misses fall
// through to the remote geocoder.
type Gazetteer struct {
	entries map[string]map[string]GazetteerEntry // country -> zip -> entry
}

// NewGazetteer returns an empty gazetteer.
func NewGazetteer() *Gazetteer {
	return &Gazetteer{entries: make(map[string]map[string]GazetteerEntry)}
}

// LoadCountry loads a delimiter-separated postal file for a country.
// Expected columns: postal_code, city, state, lat, lon (header row
// required; extra columns ignored). US files commonly ship
// semicolon-separated.
func (g *Gazetteer) LoadCountry(country, path string, sep rune) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open gazetteer file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = sep
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read gazetteer file: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("gazetteer file %s has no data rows", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range []string{"postal_code", "city", "state", "lat", "lon"} {
		if _, ok := col[k]; !ok {
			return fmt.Errorf("gazetteer file %s missing required column: %s", path, k)
		}
	}

	country = strings.ToUpper(country)
	byZip, ok := g.entries[country]
	if !ok {
		byZip = make(map[string]GazetteerEntry, len(records)-1)
		g.entries[country] = byZip
	}

	loaded := 0
	for _, rec := range records[1:] {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(rec[col["lat"]]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(rec[col["lon"]]), 64)
		if errLat != nil || errLon != nil {
			continue
		}
		zip := normalizeGazetteerZip(country, rec[col["postal_code"]])
		if zip == "" {
			continue
		}
		byZip[zip] = GazetteerEntry{
			PostalCode: zip,
			City:       strings.TrimSpace(rec[col["city"]]),
			State:      strings.TrimSpace(rec[col["state"]]),
			Lat:        lat,
			Lon:        lon,
		}
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("gazetteer file %s yielded no usable rows", path)
	}
	return nil
}

// normalizeGazetteerZip applies the same normalization the classifier
// applies to guest origins, so lookups line up.
func normalizeGazetteerZip(country, raw string) string {
	o := ClassifyOrigin(raw, country)
	if !o.HasZip() {
		return ""
	}
	return o.Zip
}

// Lookup resolves a normalized postal code for a country.
func (g *Gazetteer) Lookup(country, zip string) (GazetteerEntry, bool) {
	byZip, ok := g.entries[strings.ToUpper(country)]
	if !ok {
		return GazetteerEntry{}, false
	}
	e, ok := byZip[zip]
	return e, ok
}

// Size returns the number of entries loaded for a country.
func (g *Gazetteer) Size(country string) int {
	return len(g.entries[strings.ToUpper(country)])
}
