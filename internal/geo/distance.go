package geo

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	MetersPerMile     = 1609.34
	KmPerMile         = 1.60934
)

// GeodesicMiles calculates the great-circle distance between two points
// in statute miles.
func GeodesicMiles(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters / MetersPerMile
}

// Estimation constants for driving legs when the routing service is
// not in use. Beta is a regression coefficient fit against historical
// routed distances; speed is the assumed average in mph.
const (
	DrivingBeta  = 1.27714323
	AverageSpeed = 60.0
)

// EstimateDriving converts a geodesic distance into an estimated
// driving distance (miles) and driving time (hours).
func EstimateDriving(geodesicMiles float64) (distance, duration float64) {
	distance = geodesicMiles * DrivingBeta
	duration = distance / AverageSpeed
	return distance, duration
}
