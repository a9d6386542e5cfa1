package repository

import (
	"database/sql"
	"fmt"

	"github.com/lodgenet/emissions-backend-go/internal/database"
	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// EmissionRepository persists per-itinerary, per-scenario emissions.
type EmissionRepository struct {
	db *sql.DB
}

// NewEmissionRepository creates a new emission repository
func NewEmissionRepository(db *sql.DB) *EmissionRepository {
	return &EmissionRepository{db: db}
}

// DeleteAll clears the emissions table ahead of a full recompute.
func (r *EmissionRepository) DeleteAll() (int64, error) {
	res, err := r.db.Exec("DELETE FROM ghg")
	if err != nil {
		return 0, fmt.Errorf("failed to clear emissions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// InsertResults writes emission rows in one transaction.
func (r *EmissionRepository) InsertResults(results []models.EmissionResult) error {
	if len(results) == 0 {
		return nil
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO ghg
			(itinerary_id, scenario, emission) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare emission insert: %w", err)
		}
		defer stmt.Close()

		for _, res := range results {
			if _, err := stmt.Exec(res.ItineraryID, res.Scenario, res.Emission); err != nil {
				return fmt.Errorf("failed to insert emission: %w", err)
			}
		}
		return nil
	})
}

// GetByItinerary reads back the emission rows for one itinerary.
func (r *EmissionRepository) GetByItinerary(itineraryID int64) ([]models.EmissionResult, error) {
	rows, err := r.db.Query(
		"SELECT itinerary_id, scenario, emission FROM ghg WHERE itinerary_id = ? ORDER BY scenario",
		itineraryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query emissions: %w", err)
	}
	defer rows.Close()

	var results []models.EmissionResult
	for rows.Next() {
		var res models.EmissionResult
		if err := rows.Scan(&res.ItineraryID, &res.Scenario, &res.Emission); err != nil {
			return nil, fmt.Errorf("failed to scan emission: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
