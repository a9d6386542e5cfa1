package distance

import (
	"context"
	"fmt"
	"log"

	"github.com/lodgenet/emissions-backend-go/internal/geo"
	"github.com/lodgenet/emissions-backend-go/internal/models"
	"github.com/lodgenet/emissions-backend-go/internal/repository"
)

// CutoffMiles is the geodesic distance at and beyond which
// point-to-point driving estimation is replaced by the facility's
// airport-hub values: long trips are assumed to route through an
// airport.
const CutoffMiles = 600.0

// Result is one resolved origin -> facility leg.
type Result struct {
	Geodesic    float64
	Driving     float64
	DrivingTime float64
	Origin      geo.Origin
	Source      string // "cache", "airport", "intl", "routed", "estimated", "unresolved"
	Annotation  string
}

// Options configures a resolver.
type Options struct {
	// UseRemoteAPI routes new below-cutoff pairs through the routing
	// service instead of the linear estimate.
	UseRemoteAPI bool
	// CutoffMiles overrides the default airport cutoff; zero keeps it.
	CutoffMiles float64
}

// Stats accumulates per-run diagnostics. Individual failures degrade
// to sentinel values and are summarized here instead of raised.
type Stats struct {
	CacheHits       int
	AirportFallback int
	International   int
	Geocoded        int
	GeocodeMisses   int
	RoutingFailures int
	Unresolved      int
}

// Resolver resolves travel distances between guest origins and
// facilities through a prioritized chain: distance cache, then
// international-airport assignment, then geocode-and-estimate (or the
// remote routing service). Each strategy either resolves or defers to
// the next.
type Resolver struct {
	facilities map[string]models.Facility
	cache      *repository.DistanceRepository
	gazetteer  *geo.Gazetteer
	geocoder   *geo.Geocoder // nil disables the remote fallback
	router     *geo.Router   // nil disables remote routing
	opts       Options
	stats      Stats
}

// NewResolver creates a resolver over the facility table and cache.
// geocoder and router may be nil; the chain degrades accordingly.
func NewResolver(
	facilities map[string]models.Facility,
	cache *repository.DistanceRepository,
	gazetteer *geo.Gazetteer,
	geocoder *geo.Geocoder,
	router *geo.Router,
	opts Options,
) *Resolver {
	if opts.CutoffMiles <= 0 {
		opts.CutoffMiles = CutoffMiles
	}
	return &Resolver{
		facilities: facilities,
		cache:      cache,
		gazetteer:  gazetteer,
		geocoder:   geocoder,
		router:     router,
		opts:       opts,
	}
}

// Stats returns the accumulated diagnostics.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// strategy resolves a leg or defers (ok=false) to the next in chain.
type strategy func(ctx context.Context, origin geo.Origin, fac models.Facility) (Result, bool, error)

// Resolve walks the strategy chain for one origin -> facility leg. It
// never fails on an unresolvable address: the result degrades to
// sentinel driving values and an annotation, and the batch continues.
// Only an unknown facility code is an error.
func (r *Resolver) Resolve(ctx context.Context, origin geo.Origin, facilityCode string) (Result, error) {
	fac, ok := r.facilities[facilityCode]
	if !ok {
		return Result{}, fmt.Errorf("unknown facility code %q", facilityCode)
	}

	chain := []strategy{r.fromCache, r.fromInternational, r.fromGeocode}
	for _, s := range chain {
		res, ok, err := s(ctx, origin, fac)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return res, nil
		}
	}

	// Nothing resolved the address. Annotate and keep going.
	r.stats.Unresolved++
	return Result{
		Geodesic:    models.DistanceUnresolved,
		Driving:     models.DistanceUnresolved,
		DrivingTime: models.DistanceUnresolved,
		Origin:      origin,
		Source:      "unresolved",
		Annotation:  fmt.Sprintf("unresolvable origin %s, %s", origin.Zip, origin.CountryCode),
	}, nil
}

// fromCache answers from the persisted (building_code, zipcode) pair.
// A cached geodesic at or beyond the cutoff substitutes the facility's
// nearest-regional-airport driving values for the point-to-point ones.
func (r *Resolver) fromCache(_ context.Context, origin geo.Origin, fac models.Facility) (Result, bool, error) {
	if !origin.HasZip() {
		return Result{}, false, nil
	}

	cached, err := r.cache.Get(fac.BuildingCode, origin.Zip)
	if err != nil {
		return Result{}, false, fmt.Errorf("distance cache lookup failed: %w", err)
	}
	if cached == nil {
		return Result{}, false, nil
	}

	resolved := origin
	resolved.City = cached.City
	resolved.StateProvince = cached.StateProvince
	resolved.Lat = cached.Lat
	resolved.Lon = cached.Lon
	resolved.Located = true

	if cached.GeodesicDistance >= r.opts.CutoffMiles {
		r.stats.AirportFallback++
		return Result{
			Geodesic:    cached.GeodesicDistance,
			Driving:     fac.DrvDistNearAirport,
			DrivingTime: fac.DrvTimeNearAirport,
			Origin:      resolved,
			Source:      "airport",
			Annotation:  fmt.Sprintf("assigned regional airport %s", fac.NearAirport),
		}, true, nil
	}

	r.stats.CacheHits++
	return Result{
		Geodesic:    cached.GeodesicDistance,
		Driving:     cached.DrivingDistance,
		DrivingTime: cached.DrivingTime,
		Origin:      resolved,
		Source:      "cache",
	}, true, nil
}

// fromInternational assigns the facility's international-airport
// values to origins outside US/Canada; no point resolution applies.
func (r *Resolver) fromInternational(_ context.Context, origin geo.Origin, fac models.Facility) (Result, bool, error) {
	if !origin.IsInternational() {
		return Result{}, false, nil
	}

	r.stats.International++
	return Result{
		Geodesic:    fac.GeoDistIntlAirport,
		Driving:     fac.DrvDistIntlAirport,
		DrivingTime: fac.DrvTimeIntlAirport,
		Origin:      origin,
		Source:      "intl",
		Annotation:  fmt.Sprintf("assigned international airport %s", fac.IntlAirport),
	}, true, nil
}

// fromGeocode resolves a new pair: gazetteer first, remote geocoder as
// fallback, geodesic against the facility, then either the routing
// service or the linear estimate for the driving leg. The resolved
// pair is cached for future runs.
func (r *Resolver) fromGeocode(ctx context.Context, origin geo.Origin, fac models.Facility) (Result, bool, error) {
	if !origin.HasZip() {
		return Result{}, false, nil
	}

	located := r.locate(ctx, &origin)
	if !located {
		r.stats.GeocodeMisses++
		return Result{}, false, nil
	}
	r.stats.Geocoded++

	geodesic := geo.GeodesicMiles(origin.Lat, origin.Lon, fac.Lat, fac.Lon)

	res := Result{
		Geodesic: geodesic,
		Origin:   origin,
	}

	if geodesic < r.opts.CutoffMiles {
		if r.opts.UseRemoteAPI && r.router != nil {
			drv, drvTime, err := r.router.DrivingDistance(ctx, origin.Lat, origin.Lon, fac.Lat, fac.Lon)
			if err != nil {
				// Routing is advisory: log, fall back to estimation.
				log.Printf("[DistanceResolver] routing failed for %s -> %s: %v", origin.Zip, fac.BuildingCode, err)
				r.stats.RoutingFailures++
				res.Driving, res.DrivingTime = geo.EstimateDriving(geodesic)
				res.Source = "estimated"
			} else {
				res.Driving, res.DrivingTime = drv, drvTime
				res.Source = "routed"
			}
		} else {
			res.Driving, res.DrivingTime = geo.EstimateDriving(geodesic)
			res.Source = "estimated"
		}
	} else {
		// Beyond the cutoff the pair itself carries no driving values;
		// the facility's regional airport stands in for the trip.
		r.stats.AirportFallback++
		res.Driving = fac.DrvDistNearAirport
		res.DrivingTime = fac.DrvTimeNearAirport
		res.Source = "airport"
		res.Annotation = fmt.Sprintf("assigned regional airport %s", fac.NearAirport)
	}

	rec := models.DistanceRecord{
		BuildingCode:     fac.BuildingCode,
		Zipcode:          origin.Zip,
		City:             origin.City,
		StateProvince:    origin.StateProvince,
		CountryCode:      origin.CountryCode,
		Lat:              origin.Lat,
		Lon:              origin.Lon,
		GeodesicDistance: geodesic,
	}
	if res.Source == "airport" {
		// Cache only the geodesic; the cache read path re-derives the
		// airport values so facility table updates take effect.
		rec.DrivingDistance = models.DistanceUnresolved
		rec.DrivingTime = models.DistanceUnresolved
	} else {
		rec.DrivingDistance = res.Driving
		rec.DrivingTime = res.DrivingTime
	}
	if err := r.cache.Insert(rec); err != nil {
		return Result{}, false, fmt.Errorf("failed to cache distance pair: %w", err)
	}

	return res, true, nil
}

// locate fills the origin's coordinates from the national gazetteer,
// falling back to the remote geocoder. Returns false when both miss.
func (r *Resolver) locate(ctx context.Context, origin *geo.Origin) bool {
	if r.gazetteer != nil {
		if e, ok := r.gazetteer.Lookup(origin.CountryCode, origin.Zip); ok {
			origin.Lat = e.Lat
			origin.Lon = e.Lon
			origin.City = e.City
			origin.StateProvince = e.State
			origin.Located = true
			return true
		}
	}

	if r.geocoder != nil {
		lat, lon, ok, err := r.geocoder.GeocodePostal(ctx, origin.QueryZip(), origin.CountryCode)
		if err != nil {
			log.Printf("[DistanceResolver] geocode failed for %s, %s: %v", origin.Zip, origin.CountryCode, err)
			return false
		}
		if ok {
			origin.Lat = lat
			origin.Lon = lon
			origin.Located = true
			return true
		}
	}

	return false
}
