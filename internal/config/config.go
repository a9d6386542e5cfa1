package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/lodgenet/emissions-backend-go/internal/emissions"
)

// Config holds pipeline configuration.
type Config struct {
	DBPath string

	// Postal gazetteer files; empty paths skip the country and misses
	// fall through to the remote geocoder.
	USZipPath string
	CAZipPath string

	GeocoderURL  string
	RoutingURL   string
	ScenarioPath string
}

// Load reads configuration from the environment with defaults,
// loading a local .env file first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:       getenv("DB_PATH", "./data/emissions.db"),
		USZipPath:    os.Getenv("US_ZIP_PATH"),
		CAZipPath:    os.Getenv("CA_ZIP_PATH"),
		GeocoderURL:  os.Getenv("GEOCODER_URL"),
		RoutingURL:   os.Getenv("ROUTING_URL"),
		ScenarioPath: os.Getenv("SCENARIO_PATH"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// scenarioFile is the YAML layout of a scenario configuration file.
type scenarioFile struct {
	Scenarios []emissions.Scenario `yaml:"scenarios"`
}

// LoadScenarios reads the emission scenarios. An empty path yields
// the default scenario set. Scenarios with an empty parameter block
// inherit the default parameter tables.
func LoadScenarios(path string) ([]emissions.Scenario, error) {
	if path == "" {
		return emissions.DefaultScenarios(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}

	defaults := emissions.DefaultParameters()
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
		if sc.Bus == "" {
			sc.Bus = emissions.BusModeNone
		}
		if sc.Parameters.CarFactor == 0 {
			groupTypes := sc.Parameters.GroupTypes
			sc.Parameters = defaults
			if len(groupTypes) > 0 {
				sc.Parameters.GroupTypes = groupTypes
			}
		}
	}

	return file.Scenarios, nil
}
