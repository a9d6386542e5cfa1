package repository

import (
	"database/sql"
	"fmt"

	"github.com/lodgenet/emissions-backend-go/internal/database"
	"github.com/lodgenet/emissions-backend-go/internal/identity"
	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// ItineraryRepository persists the derived tables of one batch:
// itinerary, reservation, building_visited, guest and identity_map.
type ItineraryRepository struct {
	db *sql.DB
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db *sql.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// MaxItineraryID returns the highest itinerary id committed before the
// processing year (itineraries arriving before Jan 1 of that year).
// Offsetting a run's dense ids by this value makes a same-year re-run
// reproduce identical ids, so the insert-or-ignore writes dedupe
// instead of persisting the batch twice.
func (r *ItineraryRepository) MaxItineraryID(year int) (int64, error) {
	boundary := fmt.Sprintf("%04d-01-01", year)

	var max sql.NullInt64
	err := r.db.QueryRow(
		"SELECT MAX(itinerary_id) FROM itinerary WHERE arrival_date < ?", boundary,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to query max itinerary id: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return max.Int64, nil
}

// SaveBatch writes itineraries with their reservations, building
// visits and guest rows in one transaction. All inserts are
// insert-or-ignore, so replays of an already-committed batch are
// harmless.
func (r *ItineraryRepository) SaveBatch(itineraries []models.Itinerary) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		guestStmt, err := tx.Prepare(`INSERT OR IGNORE INTO guest
			(guest_uid, zipcode, city, state_province, country_code)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare guest insert: %w", err)
		}
		defer guestStmt.Close()

		itinStmt, err := tx.Prepare(`INSERT OR IGNORE INTO itinerary (
			itinerary_id, guest_uid, max_group_size, arrival_date, departure_date,
			in_geodesic_distance, in_drv_distance, in_drv_time,
			out_geodesic_distance, out_drv_distance, out_drv_time, group_type_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare itinerary insert: %w", err)
		}
		defer itinStmt.Close()

		resStmt, err := tx.Prepare(`INSERT OR IGNORE INTO reservation
			(itinerary_id, reservation) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare reservation insert: %w", err)
		}
		defer resStmt.Close()

		bldgStmt, err := tx.Prepare(`INSERT OR IGNORE INTO building_visited
			(itinerary_id, building_code, arrival_date, departure_date)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare building insert: %w", err)
		}
		defer bldgStmt.Close()

		for i := range itineraries {
			it := &itineraries[i]

			if _, err := guestStmt.Exec(
				it.UID, it.ZipPostalCode, it.CityCode, it.StateProvinceCode, it.CountryCode,
			); err != nil {
				return fmt.Errorf("failed to insert guest: %w", err)
			}

			if _, err := itinStmt.Exec(
				it.ID, it.UID, it.MaxGroupSize,
				formatDate(it.ArrivalDate), formatDate(it.DepartureDate),
				it.InGeodesic, it.InDriving, it.InDrivingTime,
				it.OutGeodesic, it.OutDriving, it.OutDrivingTime,
				it.GroupTypeCode,
			); err != nil {
				return fmt.Errorf("failed to insert itinerary: %w", err)
			}

			for _, res := range it.Reservations {
				if _, err := resStmt.Exec(it.ID, res); err != nil {
					return fmt.Errorf("failed to insert reservation: %w", err)
				}
			}

			for _, b := range it.Buildings {
				if _, err := bldgStmt.Exec(
					it.ID, b.BuildingCode,
					formatDate(b.ArrivalDate), formatDate(b.DepartureDate),
				); err != nil {
					return fmt.Errorf("failed to insert building visit: %w", err)
				}
			}
		}

		return nil
	})
}

// SaveIdentityMappings persists the de-duplicated identity audit rows.
func (r *ItineraryRepository) SaveIdentityMappings(mappings []identity.Mapping) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO identity_map (
			uid, first_name, last_name, address_1, address_2,
			city, state_province, zip_postal_code,
			phone_number, home_phone_number, cell_phone_number,
			email_address, internet_address
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare identity insert: %w", err)
		}
		defer stmt.Close()

		for _, m := range mappings {
			t := m.Tuple
			if _, err := stmt.Exec(
				m.UID, t.FirstName, t.LastName, t.Address1, t.Address2,
				t.City, t.StateProvince, t.ZipPostalCode,
				t.PhoneNumber, t.HomePhoneNumber, t.CellPhoneNumber,
				t.EmailAddress, t.InternetAddress,
			); err != nil {
				return fmt.Errorf("failed to insert identity mapping: %w", err)
			}
		}
		return nil
	})
}

// GetBuildingVisits reads back the persisted building spans of one
// itinerary in chronological order.
func (r *ItineraryRepository) GetBuildingVisits(itineraryID int64) ([]models.BuildingVisit, error) {
	query := `SELECT itinerary_id, building_code, arrival_date, departure_date
		FROM building_visited WHERE itinerary_id = ?
		ORDER BY arrival_date, building_code`

	rows, err := r.db.Query(query, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query building visits: %w", err)
	}
	defer rows.Close()

	var visits []models.BuildingVisit
	for rows.Next() {
		var bv models.BuildingVisit
		var arrival, departure string
		if err := rows.Scan(&bv.ItineraryID, &bv.BuildingCode, &arrival, &departure); err != nil {
			return nil, fmt.Errorf("failed to scan building visit: %w", err)
		}
		if bv.ArrivalDate, err = parseDate(arrival); err != nil {
			return nil, err
		}
		if bv.DepartureDate, err = parseDate(departure); err != nil {
			return nil, err
		}
		visits = append(visits, bv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return visits, nil
}

// GetAll reads back every persisted itinerary with the fields the
// emissions model consumes.
func (r *ItineraryRepository) GetAll() ([]models.Itinerary, error) {
	query := `SELECT itinerary_id, guest_uid, max_group_size,
		in_drv_distance, out_drv_distance, group_type_code
		FROM itinerary ORDER BY itinerary_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	var itins []models.Itinerary
	for rows.Next() {
		var it models.Itinerary
		var groupType sql.NullString
		if err := rows.Scan(
			&it.ID, &it.UID, &it.MaxGroupSize,
			&it.InDriving, &it.OutDriving, &groupType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		it.GroupTypeCode = groupType.String
		itins = append(itins, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return itins, nil
}

// CountItineraries returns the number of persisted itineraries.
func (r *ItineraryRepository) CountItineraries() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM itinerary").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count itineraries: %w", err)
	}
	return n, nil
}
