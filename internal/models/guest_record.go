package models

import "time"

// RateCategoryRoom marks a billable room-night row. Everything else
// (meals, retail, day passes) carries no travel and is filtered out.
const RateCategoryRoom = "room"

// GuestRecord is one raw reservation-line row as ingested from the
// property-management export. Immutable input to the pipeline.
type GuestRecord struct {
	ReservationNumber int64
	ArrivalDate       time.Time
	DepartureDate     time.Time
	StayDate          time.Time
	BuildingCode      string
	RateCategory      string
	GroupTypeCode     string
	GroupName         string
	NumberOfBednights int

	// Origin fields, validated and normalized during preprocessing
	ZipPostalCode     string
	StateProvinceCode string
	CityCode          string
	CountryCode       string

	// PII fields, consumed by identity resolution only
	FirstName       string
	LastName        string
	Address1        string
	Address2        string
	PhoneNumber     string
	HomePhoneNumber string
	CellPhoneNumber string
	EmailAddress    string
	InternetAddress string

	// UID is attached by the identity resolver
	UID string
}

// HasCountry reports whether the row carries a country code at all.
// Rows without one cannot be placed and go to the invalid set.
func (r *GuestRecord) HasCountry() bool {
	return r.CountryCode != ""
}
