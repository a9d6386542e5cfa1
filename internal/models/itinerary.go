package models

import "time"

// Visit is one stay under a single reservation: the unit the clusterer
// consumes. GroupSize is the maximum summed bednight count across the
// reservation's stay dates.
type Visit struct {
	UID               string
	ReservationNumber int64
	ArrivalDate       time.Time
	DepartureDate     time.Time
	GroupSize         int
	GroupTypeCode     string
	ZipPostalCode     string
	StateProvinceCode string
	CityCode          string
	CountryCode       string

	// Buildings in chronological order of first stay date
	Buildings []BuildingStay
}

// BuildingStay is a facility touched during a visit, with the first
// stay date recorded there.
type BuildingStay struct {
	BuildingCode string
	FirstStay    time.Time
}

// Itinerary is one logical multi-stop trip by one identified guest,
// folded together from one or more temporally adjacent reservations.
type Itinerary struct {
	ID            int64
	UID           string
	Reservations  []int64
	MaxGroupSize  int
	ArrivalDate   time.Time
	DepartureDate time.Time
	GroupTypeCode string

	// Origin as validated for the guest
	ZipPostalCode     string
	StateProvinceCode string
	CityCode          string
	CountryCode       string

	// Buildings visited, chronological, with derived per-building spans
	Buildings []BuildingVisit

	// Leg distances, resolved against the first and last building
	InGeodesic     float64
	InDriving      float64
	InDrivingTime  float64
	OutGeodesic    float64
	OutDriving     float64
	OutDrivingTime float64
}

// BuildingVisit is one persisted row of the building_visited table:
// the span one itinerary spent at one facility.
type BuildingVisit struct {
	ItineraryID   int64
	BuildingCode  string
	ArrivalDate   time.Time
	DepartureDate time.Time
}

// FirstBuilding returns the building code of the first stop, or "".
func (it *Itinerary) FirstBuilding() string {
	if len(it.Buildings) == 0 {
		return ""
	}
	return it.Buildings[0].BuildingCode
}

// LastBuilding returns the building code of the final stop, or "".
func (it *Itinerary) LastBuilding() string {
	if len(it.Buildings) == 0 {
		return ""
	}
	return it.Buildings[len(it.Buildings)-1].BuildingCode
}
