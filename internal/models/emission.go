package models

// EmissionResult is one computed emission quantity, in metric tons of
// CO2-equivalent, for one itinerary under one named scenario.
type EmissionResult struct {
	ItineraryID int64
	Scenario    string
	Emission    float64
}
