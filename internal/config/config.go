package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database   *dbConfig
	Service    *svcConfig
	Estimation *estimationConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"fracture-planner.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string    `envconfig:"FRACTURE_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress string    `envconfig:"FRACTURE_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel       string    `envconfig:"FRACTURE_PLANNER_LOG_LEVEL" default:"info"`
	LogFormat      string    `envconfig:"FRACTURE_PLANNER_LOG_FORMAT" default:"console"`
	AllowedOrigins []string  `envconfig:"FRACTURE_PLANNER_ALLOWED_ORIGINS" default:"*"`
	LatencyBuckets []float64 `envconfig:"FRACTURE_PLANNER_LATENCY_BUCKETS" default:"300,500,1000,5000"`
	PathPrefix     string    `envconfig:"FRACTURE_PLANNER_PATH_PREFIX" default:""`
	// EventsWriter selects where run events go: "none" or "stdout".
	EventsWriter string `envconfig:"FRACTURE_PLANNER_EVENTS_WRITER" default:"none"`
}

type estimationConfig struct {
	// RegimeThreshold is the toughness/viscosity score above which a
	// fracture is classified toughness dominated.
	RegimeThreshold float64 `envconfig:"FRACTURE_PLANNER_REGIME_THRESHOLD" default:"100"`
	UnitSystem      string  `envconfig:"FRACTURE_PLANNER_UNIT_SYSTEM" default:"si"`
	PersistRuns     bool    `envconfig:"FRACTURE_PLANNER_PERSIST_RUNS" default:"true"`
}

// New loads the process configuration from the environment once and
// returns the same instance on every later call.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns a fresh configuration that is not shared with New.
// The defaults are only overridden by variables present in the environment.
func NewDefault() *Config {
	cfg, err := load()
	if err != nil {
		return &Config{
			Database: &dbConfig{Type: "sqlite", Name: "fracture-planner.db"},
			Service: &svcConfig{
				Address:        ":3443",
				MetricsAddress: ":8080",
				LogLevel:       "info",
				LogFormat:      "console",
				AllowedOrigins: []string{"*"},
				EventsWriter:   "none",
			},
			Estimation: &estimationConfig{RegimeThreshold: 100, UnitSystem: "si", PersistRuns: true},
		}
	}
	return cfg
}

func load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
