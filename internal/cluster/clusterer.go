package cluster

import (
	"sort"
	"time"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// GapThresholdDays is the merge window: two visits by the same guest
// merge into one itinerary when the gap between one's departure and
// the next's arrival falls within [-GapThresholdDays, +GapThresholdDays],
// inclusive on both bounds. Negative gaps are overlapping stays.
const GapThresholdDays = 6

// accumulator carries the itinerary under construction through the
// fold, together with the state the merge decision needs.
type accumulator struct {
	itinerary models.Itinerary
	buildings map[string]time.Time // building code -> earliest first stay
	prevUID   string
	prevRes   int64
	prevDep   time.Time
}

// Cluster folds visits (pre-sorted by UID then date; the fold sorts
// defensively) into itineraries. A visit merges into the running
// itinerary when it belongs to the same UID and either shares the
// previous visit's reservation number or arrives within the gap
// threshold of the previous departure; reservation equality always
// merges. Identifiers are assigned densely in pass order, shifted by
// idOffset so they never collide with itineraries committed by
// earlier years and so a replayed year lands on its own ids.
func Cluster(visits []models.Visit, idOffset int64) []models.Itinerary {
	if len(visits) == 0 {
		return nil
	}

	sorted := make([]models.Visit, len(visits))
	copy(sorted, visits)
	SortVisits(sorted)

	var out []models.Itinerary
	var acc *accumulator

	for i := range sorted {
		v := &sorted[i]
		if acc != nil && acc.merges(v) {
			acc.absorb(v)
		} else {
			if acc != nil {
				out = append(out, acc.finalize(idOffset+int64(len(out))+1))
			}
			acc = newAccumulator(v)
		}
		acc.prevUID = v.UID
		acc.prevRes = v.ReservationNumber
		acc.prevDep = v.DepartureDate
	}
	out = append(out, acc.finalize(idOffset+int64(len(out))+1))

	return out
}

// merges decides whether a visit continues the running itinerary.
func (a *accumulator) merges(v *models.Visit) bool {
	if v.UID != a.prevUID {
		return false
	}
	if v.ReservationNumber == a.prevRes {
		return true
	}
	gap := daysBetween(a.prevDep, v.ArrivalDate)
	return gap >= -GapThresholdDays && gap <= GapThresholdDays
}

func newAccumulator(v *models.Visit) *accumulator {
	a := &accumulator{
		itinerary: models.Itinerary{
			UID:               v.UID,
			ArrivalDate:       v.ArrivalDate,
			DepartureDate:     v.DepartureDate,
			GroupTypeCode:     v.GroupTypeCode,
			ZipPostalCode:     v.ZipPostalCode,
			StateProvinceCode: v.StateProvinceCode,
			CityCode:          v.CityCode,
			CountryCode:       v.CountryCode,
		},
		buildings: make(map[string]time.Time),
	}
	a.absorb(v)
	return a
}

// absorb folds one visit into the accumulator: union of reservations,
// extended building sequence, widened date span, max group size.
func (a *accumulator) absorb(v *models.Visit) {
	it := &a.itinerary

	found := false
	for _, r := range it.Reservations {
		if r == v.ReservationNumber {
			found = true
			break
		}
	}
	if !found {
		it.Reservations = append(it.Reservations, v.ReservationNumber)
	}

	if v.ArrivalDate.Before(it.ArrivalDate) {
		it.ArrivalDate = v.ArrivalDate
	}
	if v.DepartureDate.After(it.DepartureDate) {
		it.DepartureDate = v.DepartureDate
	}
	if v.GroupSize > it.MaxGroupSize {
		it.MaxGroupSize = v.GroupSize
	}

	for _, b := range v.Buildings {
		if prev, ok := a.buildings[b.BuildingCode]; !ok || b.FirstStay.Before(prev) {
			a.buildings[b.BuildingCode] = b.FirstStay
		}
	}
}

// finalize assigns the identifier and derives the per-building spans:
// each building's departure is the next building's arrival; the last
// building keeps the itinerary's overall departure.
func (a *accumulator) finalize(id int64) models.Itinerary {
	it := a.itinerary
	it.ID = id

	type stop struct {
		code  string
		first time.Time
	}
	stops := make([]stop, 0, len(a.buildings))
	for code, first := range a.buildings {
		stops = append(stops, stop{code, first})
	}
	sort.Slice(stops, func(i, j int) bool {
		if !stops[i].first.Equal(stops[j].first) {
			return stops[i].first.Before(stops[j].first)
		}
		return stops[i].code < stops[j].code
	})

	it.Buildings = make([]models.BuildingVisit, len(stops))
	for i, s := range stops {
		bv := models.BuildingVisit{
			ItineraryID:  id,
			BuildingCode: s.code,
			ArrivalDate:  s.first,
		}
		if i+1 < len(stops) {
			bv.DepartureDate = stops[i+1].first
		} else {
			bv.DepartureDate = it.DepartureDate
		}
		it.Buildings[i] = bv
	}

	return it
}

// Flatten expands itineraries back into visits, one per reservation,
// preserving the merge-relevant attributes.
func Flatten(itins []models.Itinerary) []models.Visit {
	var visits []models.Visit
	for _, it := range itins {
		for _, res := range it.Reservations {
			v := models.Visit{
				UID:               it.UID,
				ReservationNumber: res,
				ArrivalDate:       it.ArrivalDate,
				DepartureDate:     it.DepartureDate,
				GroupSize:         it.MaxGroupSize,
				GroupTypeCode:     it.GroupTypeCode,
				ZipPostalCode:     it.ZipPostalCode,
				StateProvinceCode: it.StateProvinceCode,
				CityCode:          it.CityCode,
				CountryCode:       it.CountryCode,
			}
			for _, b := range it.Buildings {
				v.Buildings = append(v.Buildings, models.BuildingStay{
					BuildingCode: b.BuildingCode,
					FirstStay:    b.ArrivalDate,
				})
			}
			visits = append(visits, v)
		}
	}
	SortVisits(visits)
	return visits
}

// daysBetween returns the whole-day difference to - from. Dates are
// normalized to midnight, so the division is exact.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
