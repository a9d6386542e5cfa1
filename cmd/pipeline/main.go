package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lodgenet/emissions-backend-go/internal/config"
	"github.com/lodgenet/emissions-backend-go/internal/database"
	"github.com/lodgenet/emissions-backend-go/internal/distance"
	"github.com/lodgenet/emissions-backend-go/internal/geo"
	"github.com/lodgenet/emissions-backend-go/internal/ingest"
	"github.com/lodgenet/emissions-backend-go/internal/pipeline"
	"github.com/lodgenet/emissions-backend-go/internal/repository"
)

func main() {
	var (
		csvPath    = flag.String("csv", "", "raw reservation CSV batch (required)")
		year       = flag.Int("year", time.Now().Year(), "processing year for itinerary id offsets")
		deidentify = flag.Bool("deidentify", false, "substitute synthetic PII before processing")
		useAPI     = flag.Bool("use-api", false, "fetch driving distances from the routing service")
		facilities = flag.String("facilities", "", "facility seed CSV to load before processing")
	)
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	facilityRepo := repository.NewFacilityRepository(db)
	if *facilities != "" {
		seed, err := ingest.LoadFacilities(*facilities)
		if err != nil {
			log.Fatal("Failed to load facility seed: ", err)
		}
		for _, f := range seed {
			if err := facilityRepo.Insert(f); err != nil {
				log.Fatal("Failed to seed facility: ", err)
			}
		}
		log.Printf("Seeded %d facilities", len(seed))
	}

	facilityMap, err := facilityRepo.GetAll()
	if err != nil {
		log.Fatal("Failed to load facilities: ", err)
	}
	if len(facilityMap) == 0 {
		log.Fatal("No facilities configured; seed the facility table first (-facilities)")
	}

	gazetteer := geo.NewGazetteer()
	if cfg.USZipPath != "" {
		if err := gazetteer.LoadCountry("US", cfg.USZipPath, ';'); err != nil {
			log.Fatal("Failed to load US gazetteer: ", err)
		}
		log.Printf("Loaded %d US postal codes", gazetteer.Size("US"))
	}
	if cfg.CAZipPath != "" {
		if err := gazetteer.LoadCountry("CA", cfg.CAZipPath, ','); err != nil {
			log.Fatal("Failed to load CA gazetteer: ", err)
		}
		log.Printf("Loaded %d CA postal codes", gazetteer.Size("CA"))
	}

	scenarios, err := config.LoadScenarios(cfg.ScenarioPath)
	if err != nil {
		log.Fatal("Failed to load scenarios: ", err)
	}

	records, err := ingest.LoadFile(*csvPath)
	if err != nil {
		log.Fatal("Failed to load batch: ", err)
	}
	log.Printf("Loaded %d raw rows from %s", len(records), *csvPath)

	resolver := distance.NewResolver(
		facilityMap,
		repository.NewDistanceRepository(db),
		gazetteer,
		geo.NewGeocoder(cfg.GeocoderURL, ""),
		geo.NewRouter(cfg.RoutingURL),
		distance.Options{UseRemoteAPI: *useAPI},
	)

	jobRepo := repository.NewJobRepository(db)
	job, err := jobRepo.Create(*year)
	if err != nil {
		log.Fatal("Failed to create pipeline job: ", err)
	}
	if err := jobRepo.MarkRunning(job.ID); err != nil {
		log.Fatal("Failed to start pipeline job: ", err)
	}

	orch := pipeline.NewOrchestrator(
		repository.NewItineraryRepository(db),
		repository.NewEmissionRepository(db),
		resolver,
		scenarios,
		pipeline.MultiReporter{
			pipeline.LogReporter{},
			pipeline.NewJobReporter(jobRepo, job.ID),
		},
	)

	// Abandon cleanly on SIGINT/SIGTERM, between phases only
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := orch.Run(ctx, records, pipeline.Options{
		Year:       *year,
		Deidentify: *deidentify,
	})
	if err != nil {
		_ = jobRepo.SetCounts(job.ID, summary.TotalRows, summary.InvalidRows, summary.NonRoomRows)
		if ctx.Err() != nil {
			_ = jobRepo.MarkAbandoned(job.ID)
			log.Fatal("Pipeline abandoned: ", err)
		}
		_ = jobRepo.MarkFailed(job.ID, err.Error())
		log.Fatal("Pipeline failed: ", err)
	}

	if err := jobRepo.SetCounts(job.ID, summary.TotalRows, summary.InvalidRows, summary.NonRoomRows); err != nil {
		log.Printf("Failed to record job counts: %v", err)
	}
	if err := jobRepo.MarkCompleted(job.ID); err != nil {
		log.Printf("Failed to complete job: %v", err)
	}

	log.Printf("Done: %d rows (%d invalid, %d non-room), %d identities, %d visits, %d itineraries, %d emission rows",
		summary.TotalRows, summary.InvalidRows, summary.NonRoomRows,
		summary.Identities, summary.Visits, summary.Itineraries, summary.Emissions)
	log.Printf("Distance resolution: %d cache hits, %d geocoded, %d airport fallbacks, %d international, %d unresolved",
		summary.Distance.CacheHits, summary.Distance.Geocoded,
		summary.Distance.AirportFallback, summary.Distance.International,
		summary.Distance.Unresolved)
}
