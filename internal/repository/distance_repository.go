package repository

import (
	"database/sql"
	"fmt"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// DistanceRepository handles the (building_code, zipcode) distance
// cache. Writes are insert-or-ignore: cached distances are
// deterministic given the same inputs, so the first writer wins and
// concurrent resolvers never conflict.
type DistanceRepository struct {
	db *sql.DB
}

// NewDistanceRepository creates a new distance repository
func NewDistanceRepository(db *sql.DB) *DistanceRepository {
	return &DistanceRepository{db: db}
}

// Get retrieves a cached pair, or nil when the pair is unknown.
func (r *DistanceRepository) Get(buildingCode, zipcode string) (*models.DistanceRecord, error) {
	query := `SELECT building_code, zipcode, city, state_province, country_code,
		lat, lon, geodesic_distance, driving_distance, driving_time
		FROM distance_lookup WHERE building_code = ? AND zipcode = ?`

	var d models.DistanceRecord
	var city, state, country sql.NullString
	var lat, lon, geo, drv, drvTime sql.NullFloat64

	err := r.db.QueryRow(query, buildingCode, zipcode).Scan(
		&d.BuildingCode, &d.Zipcode, &city, &state, &country,
		&lat, &lon, &geo, &drv, &drvTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get distance pair: %w", err)
	}

	d.City = city.String
	d.StateProvince = state.String
	d.CountryCode = country.String
	d.Lat = lat.Float64
	d.Lon = lon.Float64
	d.GeodesicDistance = geo.Float64
	d.DrivingDistance = drv.Float64
	d.DrivingTime = drvTime.Float64

	return &d, nil
}

// Insert caches a resolved pair. Existing pairs are left untouched.
func (r *DistanceRepository) Insert(d models.DistanceRecord) error {
	query := `INSERT OR IGNORE INTO distance_lookup (
		building_code, zipcode, city, state_province, country_code,
		lat, lon, geodesic_distance, driving_distance, driving_time
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		d.BuildingCode, d.Zipcode, d.City, d.StateProvince, d.CountryCode,
		d.Lat, d.Lon, d.GeodesicDistance, d.DrivingDistance, d.DrivingTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert distance pair: %w", err)
	}
	return nil
}

// Count returns the number of cached pairs.
func (r *DistanceRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM distance_lookup").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count distance pairs: %w", err)
	}
	return n, nil
}
