package database

import (
	"database/sql"
	"fmt"
)

// schema is the full DDL for the pipeline's tables. Dates are stored
// as ISO (YYYY-MM-DD) text. Derived-table writes use INSERT OR IGNORE
// against these primary keys, so re-running a batch is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS facility (
		building_code TEXT PRIMARY KEY,
		building_name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		nearest_airport TEXT,
		geo_dst_near_airport REAL,
		drv_dst_near_airport REAL,
		drv_time_near_airport REAL,
		international_airport TEXT,
		geo_dst_intl_airport REAL,
		drv_dst_intl_airport REAL,
		drv_time_intl_airport REAL
	)`,

	`CREATE TABLE IF NOT EXISTS distance_lookup (
		building_code TEXT NOT NULL,
		zipcode TEXT NOT NULL,
		city TEXT,
		state_province TEXT,
		country_code TEXT,
		lat REAL,
		lon REAL,
		geodesic_distance REAL,
		driving_distance REAL,
		driving_time REAL,
		PRIMARY KEY (building_code, zipcode)
	)`,

	`CREATE TABLE IF NOT EXISTS guest (
		guest_uid TEXT PRIMARY KEY,
		zipcode TEXT,
		city TEXT,
		state_province TEXT,
		country_code TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS identity_map (
		uid TEXT PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		address_1 TEXT,
		address_2 TEXT,
		city TEXT,
		state_province TEXT,
		zip_postal_code TEXT,
		phone_number TEXT,
		home_phone_number TEXT,
		cell_phone_number TEXT,
		email_address TEXT,
		internet_address TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS itinerary (
		itinerary_id INTEGER PRIMARY KEY,
		guest_uid TEXT REFERENCES guest(guest_uid),
		max_group_size INTEGER,
		arrival_date TEXT,
		departure_date TEXT,
		in_geodesic_distance REAL,
		in_drv_distance REAL,
		in_drv_time REAL,
		out_geodesic_distance REAL,
		out_drv_distance REAL,
		out_drv_time REAL,
		group_type_code TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS reservation (
		itinerary_id INTEGER NOT NULL REFERENCES itinerary(itinerary_id),
		reservation INTEGER NOT NULL,
		PRIMARY KEY (itinerary_id, reservation)
	)`,

	`CREATE TABLE IF NOT EXISTS building_visited (
		itinerary_id INTEGER NOT NULL REFERENCES itinerary(itinerary_id),
		building_code TEXT NOT NULL,
		arrival_date TEXT,
		departure_date TEXT,
		PRIMARY KEY (itinerary_id, building_code)
	)`,

	`CREATE TABLE IF NOT EXISTS ghg (
		itinerary_id INTEGER NOT NULL REFERENCES itinerary(itinerary_id),
		scenario TEXT NOT NULL,
		emission REAL NOT NULL,
		PRIMARY KEY (itinerary_id, scenario)
	)`,

	`CREATE TABLE IF NOT EXISTS pipeline_jobs (
		id TEXT PRIMARY KEY,
		year INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		stage TEXT,
		progress_percent INTEGER NOT NULL DEFAULT 0,
		total_rows INTEGER NOT NULL DEFAULT 0,
		invalid_rows INTEGER NOT NULL DEFAULT 0,
		nonroom_rows INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		started_at TEXT,
		completed_at TEXT
	)`,
}

// InitSchema creates all tables if they do not exist.
func InitSchema(db *sql.DB) error {
	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
