package cluster

import (
	"sort"
	"time"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// visitKey identifies one stay-night group within a reservation.
type visitKey struct {
	uid         string
	reservation int64
	arrival     time.Time
	departure   time.Time
	stayDate    time.Time
}

// BuildVisits reduces raw reservation-line rows to one Visit per
// (UID, reservation). Per-stay-date occupancy is the sum of bednights
// across that date's rows; the visit group size is the maximum summed
// occupancy over the reservation's stay dates. Buildings are kept in
// chronological order of first stay date.
func BuildVisits(records []*models.GuestRecord) []models.Visit {
	type stayAgg struct {
		bednights int
		first     *models.GuestRecord
	}

	// Sum bednights per (UID, reservation, arrival, departure, stay date)
	stays := make(map[visitKey]*stayAgg)
	order := make([]visitKey, 0, len(records))
	for _, r := range records {
		k := visitKey{r.UID, r.ReservationNumber, r.ArrivalDate, r.DepartureDate, r.StayDate}
		agg, ok := stays[k]
		if !ok {
			agg = &stayAgg{first: r}
			stays[k] = agg
			order = append(order, k)
		}
		n := r.NumberOfBednights
		if n <= 0 {
			n = 1
		}
		agg.bednights += n
	}

	// Collapse stay-date groups into one visit per (UID, reservation)
	type resKey struct {
		uid         string
		reservation int64
	}
	visits := make(map[resKey]*models.Visit)
	firstStay := make(map[resKey]map[string]time.Time)
	var keys []resKey

	for _, k := range order {
		agg := stays[k]
		rk := resKey{k.uid, k.reservation}

		v, ok := visits[rk]
		if !ok {
			r := agg.first
			v = &models.Visit{
				UID:               k.uid,
				ReservationNumber: k.reservation,
				ArrivalDate:       k.arrival,
				DepartureDate:     k.departure,
				GroupTypeCode:     normalizeGroupType(r.GroupTypeCode),
				ZipPostalCode:     r.ZipPostalCode,
				StateProvinceCode: r.StateProvinceCode,
				CityCode:          r.CityCode,
				CountryCode:       r.CountryCode,
			}
			visits[rk] = v
			firstStay[rk] = make(map[string]time.Time)
			keys = append(keys, rk)
		}

		if k.arrival.Before(v.ArrivalDate) {
			v.ArrivalDate = k.arrival
		}
		if k.departure.After(v.DepartureDate) {
			v.DepartureDate = k.departure
		}
		if agg.bednights > v.GroupSize {
			v.GroupSize = agg.bednights
		}

		bc := agg.first.BuildingCode
		if bc != "" {
			if prev, ok := firstStay[rk][bc]; !ok || k.stayDate.Before(prev) {
				firstStay[rk][bc] = k.stayDate
			}
		}
	}

	out := make([]models.Visit, 0, len(keys))
	for _, rk := range keys {
		v := visits[rk]
		for bc, first := range firstStay[rk] {
			v.Buildings = append(v.Buildings, models.BuildingStay{BuildingCode: bc, FirstStay: first})
		}
		sort.Slice(v.Buildings, func(i, j int) bool {
			bi, bj := v.Buildings[i], v.Buildings[j]
			if !bi.FirstStay.Equal(bj.FirstStay) {
				return bi.FirstStay.Before(bj.FirstStay)
			}
			return bi.BuildingCode < bj.BuildingCode
		})
		out = append(out, *v)
	}

	SortVisits(out)
	return out
}

// SortVisits orders visits the way the clusterer expects: by UID, then
// arrival date, then reservation number.
func SortVisits(visits []models.Visit) {
	sort.Slice(visits, func(i, j int) bool {
		vi, vj := visits[i], visits[j]
		if vi.UID != vj.UID {
			return vi.UID < vj.UID
		}
		if !vi.ArrivalDate.Equal(vj.ArrivalDate) {
			return vi.ArrivalDate.Before(vj.ArrivalDate)
		}
		return vi.ReservationNumber < vj.ReservationNumber
	})
}

// normalizeGroupType clears the "nan" placeholder some exports carry.
func normalizeGroupType(code string) string {
	if code == "nan" {
		return ""
	}
	return code
}
