package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

const (
	EventsWriterNone   = "none"
	EventsWriterStdout = "stdout"
)

type Config struct {
	Service    *svcConfig
	Estimation *estimationConfig
	Events     *eventsConfig
}

type svcConfig struct {
	Address        string   `envconfig:"PLANNER_ADDRESS" default:":3443"`
	MetricsAddress string   `envconfig:"PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel       string   `envconfig:"PLANNER_LOG_LEVEL" default:"info"`
	LogFormat      string   `envconfig:"PLANNER_LOG_FORMAT" default:"console"`
	AllowedOrigins []string `envconfig:"PLANNER_CORS_ORIGINS" default:"*"`
}

type estimationConfig struct {
	// HardwareCatalog is an optional YAML file merged over the built-in hardware tiers.
	HardwareCatalog string `envconfig:"PLANNER_HARDWARE_CATALOG" default:""`
	GPUMemoryCheck  bool   `envconfig:"PLANNER_GPU_MEMORY_CHECK" default:"true"`
}

type eventsConfig struct {
	// Writer is where estimation events go: none or stdout.
	Writer string `envconfig:"PLANNER_EVENTS_WRITER" default:"none"`
	Topic  string `envconfig:"PLANNER_EVENTS_TOPIC" default:"training.planner.events"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		cfg, err := Load()
		if err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// Load reads the configuration from the environment without caching it.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
