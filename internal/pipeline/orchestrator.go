package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/lodgenet/emissions-backend-go/internal/cluster"
	"github.com/lodgenet/emissions-backend-go/internal/distance"
	"github.com/lodgenet/emissions-backend-go/internal/emissions"
	"github.com/lodgenet/emissions-backend-go/internal/geo"
	"github.com/lodgenet/emissions-backend-go/internal/identity"
	"github.com/lodgenet/emissions-backend-go/internal/ingest"
	"github.com/lodgenet/emissions-backend-go/internal/models"
	"github.com/lodgenet/emissions-backend-go/internal/repository"
)

// Options configures one batch run.
type Options struct {
	// Year is the processing year; it anchors the itinerary id offset.
	Year int
	// Deidentify substitutes synthetic PII before anything else reads
	// the identity fields.
	Deidentify bool
	// DeidentifySeed makes the substitution reproducible; 0 draws a
	// random seed.
	DeidentifySeed uint64
}

// Summary aggregates per-row outcomes of a run. Per-row failures are
// counted here, never raised individually.
type Summary struct {
	TotalRows   int
	NonRoomRows int
	InvalidRows int
	ValidRows   int
	Identities  int
	Visits      int
	Itineraries int
	Emissions   int
	Distance    distance.Stats
}

// Orchestrator sequences the batch pipeline: filter, validate,
// identities, visits, itineraries, distances, persistence, emissions.
// Single-threaded by design; only the distance cache is shared, and
// its writes are insert-or-ignore.
type Orchestrator struct {
	itineraries *repository.ItineraryRepository
	emissionsDB *repository.EmissionRepository
	resolver    *distance.Resolver
	scenarios   []emissions.Scenario
	reporter    Reporter
}

// NewOrchestrator wires a pipeline. A nil reporter logs progress.
func NewOrchestrator(
	itineraries *repository.ItineraryRepository,
	emissionsDB *repository.EmissionRepository,
	resolver *distance.Resolver,
	scenarios []emissions.Scenario,
	reporter Reporter,
) *Orchestrator {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Orchestrator{
		itineraries: itineraries,
		emissionsDB: emissionsDB,
		resolver:    resolver,
		scenarios:   scenarios,
		reporter:    reporter,
	}
}

// Run processes one raw batch to completion. Cancellation is honored
// between phases only; outputs committed by finished phases stay in
// place.
func (o *Orchestrator) Run(ctx context.Context, records []*models.GuestRecord, opts Options) (*Summary, error) {
	summary := &Summary{TotalRows: len(records)}

	// Phase 1: drop non-room rows
	o.reporter.Report("Filtering non-room records...", 2)
	room, nonRoom := ingest.PartitionRateCategory(records)
	summary.NonRoomRows = len(nonRoom)

	if err := checkCancelled(ctx); err != nil {
		return summary, err
	}

	// Phase 2: validate origins
	o.reporter.Report("Validating data...", 6)
	valid, invalid := validateOrigins(room)
	summary.InvalidRows = len(invalid)
	summary.ValidRows = len(valid)
	log.Printf("[Pipeline] %d valid rows, %d invalid, %d non-room",
		len(valid), len(invalid), len(nonRoom))

	if err := checkCancelled(ctx); err != nil {
		return summary, err
	}

	// Phase 3: identities (and optional de-identification)
	if opts.Deidentify {
		o.reporter.Report("De-identifying data and generating UIDs...", 12)
	} else {
		o.reporter.Report("Generating UIDs...", 16)
	}
	mappings := o.resolveIdentities(valid, opts)
	summary.Identities = len(mappings)

	if err := checkCancelled(ctx); err != nil {
		return summary, err
	}

	// Phase 4: visits and itineraries
	o.reporter.Report("Finding itineraries and group sizes...", 50)
	visits := cluster.BuildVisits(valid)
	summary.Visits = len(visits)

	offset, err := o.itineraries.MaxItineraryID(opts.Year)
	if err != nil {
		return summary, err
	}
	itins := cluster.Cluster(visits, offset)
	summary.Itineraries = len(itins)
	log.Printf("[Pipeline] clustered %d visits into %d itineraries (id offset %d)",
		len(visits), len(itins), offset)

	if err := checkCancelled(ctx); err != nil {
		return summary, err
	}

	// Phase 5: distances for the first and last leg of each itinerary
	o.reporter.Report("Resolving travel distances...", 65)
	if err := o.resolveDistances(ctx, itins); err != nil {
		return summary, err
	}
	summary.Distance = o.resolver.Stats()

	if err := checkCancelled(ctx); err != nil {
		return summary, err
	}

	// Phase 6: persist derived tables
	o.reporter.Report("Creating database tables...", 80)
	if err := o.itineraries.SaveBatch(itins); err != nil {
		return summary, err
	}
	if err := o.itineraries.SaveIdentityMappings(mappings); err != nil {
		return summary, err
	}

	if err := checkCancelled(ctx); err != nil {
		return summary, err
	}

	// Phase 7: emissions, full recompute over every persisted itinerary
	o.reporter.Report("Computing emissions...", 90)
	n, err := o.computeEmissions()
	if err != nil {
		return summary, err
	}
	summary.Emissions = n

	o.reporter.Report("Processing finished", 100)
	return summary, nil
}

// validateOrigins normalizes each row's origin in place and splits off
// rows that cannot be placed: no country at all, or a US/CA row whose
// postal code is unrecognizable.
func validateOrigins(records []*models.GuestRecord) (valid, invalid []*models.GuestRecord) {
	for _, r := range records {
		if !r.HasCountry() {
			invalid = append(invalid, r)
			continue
		}
		origin := geo.ClassifyOrigin(r.ZipPostalCode, r.CountryCode)
		if !origin.HasZip() && !origin.IsInternational() {
			invalid = append(invalid, r)
			continue
		}
		r.ZipPostalCode = origin.Zip
		r.CountryCode = origin.CountryCode
		valid = append(valid, r)
	}
	return valid, invalid
}

// resolveIdentities attaches UIDs to every valid row and returns the
// de-duplicated identity mapping table. With de-identification on,
// synthetic PII replaces the original values first, so the UIDs and
// the retained mapping rows carry no real PII.
func (o *Orchestrator) resolveIdentities(records []*models.GuestRecord, opts Options) []identity.Mapping {
	var sub *identity.Substituter
	if opts.Deidentify {
		sub = identity.NewSubstituter(opts.DeidentifySeed)
	}

	resolver := identity.NewResolver()
	for _, r := range records {
		if sub != nil {
			sub.Apply(r)
		}
		r.UID = resolver.Resolve(r)
	}
	return resolver.Mappings()
}

// resolveDistances fills each itinerary's in and out legs against the
// first and last building. Unresolvable addresses degrade to sentinel
// values inside the resolver; only infrastructure failures propagate.
func (o *Orchestrator) resolveDistances(ctx context.Context, itins []models.Itinerary) error {
	for i := range itins {
		it := &itins[i]
		first, last := it.FirstBuilding(), it.LastBuilding()
		if first == "" {
			it.InGeodesic = models.DistanceUnresolved
			it.InDriving = models.DistanceUnresolved
			it.InDrivingTime = models.DistanceUnresolved
			it.OutGeodesic = models.DistanceUnresolved
			it.OutDriving = models.DistanceUnresolved
			it.OutDrivingTime = models.DistanceUnresolved
			continue
		}

		origin := geo.ClassifyOrigin(it.ZipPostalCode, it.CountryCode)

		in, err := o.resolver.Resolve(ctx, origin, first)
		if err != nil {
			return fmt.Errorf("failed to resolve in-leg for itinerary %d: %w", it.ID, err)
		}
		it.InGeodesic = in.Geodesic
		it.InDriving = in.Driving
		it.InDrivingTime = in.DrivingTime

		out := in
		if last != first {
			out, err = o.resolver.Resolve(ctx, origin, last)
			if err != nil {
				return fmt.Errorf("failed to resolve out-leg for itinerary %d: %w", it.ID, err)
			}
		}
		it.OutGeodesic = out.Geodesic
		it.OutDriving = out.Driving
		it.OutDrivingTime = out.DrivingTime

		// Backfill origin city/state resolved along the way
		if in.Origin.Located {
			if it.CityCode == "" {
				it.CityCode = in.Origin.City
			}
			if it.StateProvinceCode == "" {
				it.StateProvinceCode = in.Origin.StateProvince
			}
		}
	}
	return nil
}

// computeEmissions replaces the emissions table: every persisted
// itinerary is re-evaluated under every configured scenario, so
// scenario changes apply retroactively across batches. Itineraries
// with unresolved driving legs are skipped.
func (o *Orchestrator) computeEmissions() (int, error) {
	cleared, err := o.emissionsDB.DeleteAll()
	if err != nil {
		return 0, err
	}
	if cleared > 0 {
		log.Printf("[Pipeline] cleared %d prior emission rows", cleared)
	}

	itins, err := o.itineraries.GetAll()
	if err != nil {
		return 0, err
	}

	var results []models.EmissionResult
	for i := range itins {
		it := &itins[i]
		if it.InDriving < 0 || it.OutDriving < 0 {
			continue
		}
		for _, sc := range o.scenarios {
			results = append(results, models.EmissionResult{
				ItineraryID: it.ID,
				Scenario:    sc.Name,
				Emission: emissions.Estimate(
					it.MaxGroupSize, it.InDriving, it.OutDriving, it.GroupTypeCode, sc,
				),
			})
		}
	}

	if err := o.emissionsDB.InsertResults(results); err != nil {
		return 0, err
	}
	return len(results), nil
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("pipeline cancelled: %w", ctx.Err())
	default:
		return nil
	}
}
