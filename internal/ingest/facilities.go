package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

var facilityColumns = []string{
	"building_code", "building_name", "lat", "lon",
	"nearest_airport", "geo_dst_near_airport", "drv_dst_near_airport", "drv_time_near_airport",
	"international_airport", "geo_dst_intl_airport", "drv_dst_intl_airport", "drv_time_intl_airport",
}

// LoadFacilities reads the facility seed CSV: one row per building
// with coordinates and the precomputed airport-hub distances.
func LoadFacilities(path string) ([]models.Facility, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open facility file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read facility file: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("facility file has no data rows")
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range facilityColumns {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	field := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, name string) float64 {
		v, err := strconv.ParseFloat(field(row, name), 64)
		if err != nil {
			return 0
		}
		return v
	}

	facilities := make([]models.Facility, 0, len(rows)-1)
	for n, row := range rows[1:] {
		fac := models.Facility{
			BuildingCode:       field(row, "building_code"),
			Name:               field(row, "building_name"),
			NearAirport:        field(row, "nearest_airport"),
			IntlAirport:        field(row, "international_airport"),
			GeoDistNearAirport: num(row, "geo_dst_near_airport"),
			DrvDistNearAirport: num(row, "drv_dst_near_airport"),
			DrvTimeNearAirport: num(row, "drv_time_near_airport"),
			GeoDistIntlAirport: num(row, "geo_dst_intl_airport"),
			DrvDistIntlAirport: num(row, "drv_dst_intl_airport"),
			DrvTimeIntlAirport: num(row, "drv_time_intl_airport"),
		}
		if fac.BuildingCode == "" {
			return nil, fmt.Errorf("row %d: empty building code", n+2)
		}

		fac.Lat, err = strconv.ParseFloat(field(row, "lat"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad latitude: %w", n+2, err)
		}
		fac.Lon, err = strconv.ParseFloat(field(row, "lon"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad longitude: %w", n+2, err)
		}

		facilities = append(facilities, fac)
	}

	return facilities, nil
}
