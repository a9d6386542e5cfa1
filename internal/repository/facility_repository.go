package repository

import (
	"database/sql"
	"fmt"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// FacilityRepository handles database operations for facilities
type FacilityRepository struct {
	db *sql.DB
}

// NewFacilityRepository creates a new facility repository
func NewFacilityRepository(db *sql.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

// GetAll retrieves every facility keyed by building code.
func (r *FacilityRepository) GetAll() (map[string]models.Facility, error) {
	query := `SELECT building_code, building_name, lat, lon,
		nearest_airport, geo_dst_near_airport, drv_dst_near_airport, drv_time_near_airport,
		international_airport, geo_dst_intl_airport, drv_dst_intl_airport, drv_time_intl_airport
		FROM facility`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query facilities: %w", err)
	}
	defer rows.Close()

	facilities := make(map[string]models.Facility)
	for rows.Next() {
		var f models.Facility
		var nearAirport, intlAirport sql.NullString
		var geoNear, drvNear, timeNear sql.NullFloat64
		var geoIntl, drvIntl, timeIntl sql.NullFloat64

		if err := rows.Scan(
			&f.BuildingCode, &f.Name, &f.Lat, &f.Lon,
			&nearAirport, &geoNear, &drvNear, &timeNear,
			&intlAirport, &geoIntl, &drvIntl, &timeIntl,
		); err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}

		f.NearAirport = nearAirport.String
		f.GeoDistNearAirport = geoNear.Float64
		f.DrvDistNearAirport = drvNear.Float64
		f.DrvTimeNearAirport = timeNear.Float64
		f.IntlAirport = intlAirport.String
		f.GeoDistIntlAirport = geoIntl.Float64
		f.DrvDistIntlAirport = drvIntl.Float64
		f.DrvTimeIntlAirport = timeIntl.Float64

		facilities[f.BuildingCode] = f
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return facilities, nil
}

// Insert adds or replaces a facility row. Used by seeding tools.
func (r *FacilityRepository) Insert(f models.Facility) error {
	query := `INSERT OR REPLACE INTO facility (
		building_code, building_name, lat, lon,
		nearest_airport, geo_dst_near_airport, drv_dst_near_airport, drv_time_near_airport,
		international_airport, geo_dst_intl_airport, drv_dst_intl_airport, drv_time_intl_airport
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		f.BuildingCode, f.Name, f.Lat, f.Lon,
		f.NearAirport, f.GeoDistNearAirport, f.DrvDistNearAirport, f.DrvTimeNearAirport,
		f.IntlAirport, f.GeoDistIntlAirport, f.DrvDistIntlAirport, f.DrvTimeIntlAirport,
	)
	if err != nil {
		return fmt.Errorf("failed to insert facility: %w", err)
	}
	return nil
}
