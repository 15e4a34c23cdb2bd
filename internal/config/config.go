package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	RackSourceFile = "file"
	RackSourceDB   = "db"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Rack     *rackConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"patchcord.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string   `envconfig:"PATCHCORD_PLANNER_ADDRESS" default:":8000"`
	MetricsAddress string   `envconfig:"PATCHCORD_PLANNER_METRICS_ADDRESS" default:":9090"`
	WebAddress     string   `envconfig:"PATCHCORD_PLANNER_WEB_ADDRESS" default:":8080"`
	WebRoot        string   `envconfig:"PATCHCORD_PLANNER_WEB_ROOT" default:""`
	LogLevel       string   `envconfig:"PATCHCORD_PLANNER_LOG_LEVEL" default:"info"`
	CORSOrigins    []string `envconfig:"PATCHCORD_PLANNER_CORS_ORIGINS" default:"*"`
}

type rackConfig struct {
	Source     string `envconfig:"PATCHCORD_PLANNER_RACK_SOURCE" default:"file"`
	PlanFile   string `envconfig:"PATCHCORD_PLANNER_RACK_PLAN" default:""`
	RangeStart string `envconfig:"PATCHCORD_PLANNER_RACK_RANGE_START" default:"02b03"`
	RangeEnd   string `envconfig:"PATCHCORD_PLANNER_RACK_RANGE_END" default:"02b18"`
}

// New loads the configuration once per process. Values from a .env file in the
// working directory are applied first; real environment variables win.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg, err := Load(".env")
		if err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// Load processes the environment after loading envFile, if it exists.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Rack.Source {
	case RackSourceFile, RackSourceDB:
	default:
		return fmt.Errorf("invalid rack source %q: must be %q or %q", c.Rack.Source, RackSourceFile, RackSourceDB)
	}
	switch c.Database.Type {
	case "sqlite", "pgsql":
	default:
		return fmt.Errorf("invalid database type %q: must be sqlite or pgsql", c.Database.Type)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("address=%s metrics=%s web=%s web_root=%q log_level=%s db_type=%s rack_source=%s rack_plan=%q rack_range=%s-%s",
		c.Service.Address, c.Service.MetricsAddress, c.Service.WebAddress, c.Service.WebRoot, c.Service.LogLevel,
		c.Database.Type, c.Rack.Source, c.Rack.PlanFile, c.Rack.RangeStart, c.Rack.RangeEnd)
}
