package models

// DistanceUnresolved is the sentinel stored when a driving distance or
// time could not be determined for a pair.
const DistanceUnresolved = -1.0

// DistanceRecord is one cached (building_code, zipcode) pair with the
// resolved origin location and distances. Persisted so future runs skip
// recomputation.
type DistanceRecord struct {
	BuildingCode     string
	Zipcode          string
	City             string
	StateProvince    string
	CountryCode      string
	Lat              float64
	Lon              float64
	GeodesicDistance float64
	DrivingDistance  float64
	DrivingTime      float64
}

// Facility is one lodging facility with its coordinates and the
// precomputed airport-hub distances used beyond the driving cutoff.
type Facility struct {
	BuildingCode string
	Name         string
	Lat          float64
	Lon          float64

	// Nearest regional airport
	NearAirport        string
	GeoDistNearAirport float64
	DrvDistNearAirport float64
	DrvTimeNearAirport float64

	// International airport, used for overseas origins
	IntlAirport        string
	GeoDistIntlAirport float64
	DrvDistIntlAirport float64
	DrvTimeIntlAirport float64
}
