package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"
)

const (
	// ConfigDirEnvKey overrides the directory holding client.yaml.
	ConfigDirEnvKey = "PATCHCORD_PLANNER_CONFIG_DIR"
)

// Config holds the information needed to connect to a planner API server.
type Config struct {
	Service Service `json:"service"`
}

type Service struct {
	// Server is the URL of the planner API server (the part before /api/v1/...).
	Server string `json:"server"`
	// Timeout of every call, e.g. "30s".
	Timeout string `json:"timeout,omitempty"`
}

func NewDefault() *Config {
	return &Config{Service: Service{Server: "http://localhost:8000"}}
}

// NewFromConfig returns a planner client for config.
func NewFromConfig(config *Config) (*PlannerClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	httpClient, err := NewHTTPClientFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("NewFromConfig: creating HTTP client %w", err)
	}
	return NewPlannerClientWithHTTPClient(config.Service.Server, httpClient), nil
}

func NewHTTPClientFromConfig(config *Config) (*http.Client, error) {
	timeout := 30 * time.Second
	if config.Service.Timeout != "" {
		d, err := time.ParseDuration(config.Service.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", config.Service.Timeout, err)
		}
		timeout = d
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}, nil
}

// DefaultConfigPath returns the default path to the client config file.
func DefaultConfigPath() string {
	if dir := os.Getenv(ConfigDirEnvKey); dir != "" {
		return filepath.Join(dir, "client.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".patchcord-planner", "client.yaml")
}

func ParseConfigFile(filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	config := NewDefault()
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// WriteConfig writes a client config file pointing at server.
func WriteConfig(filename string, server string) error {
	config := NewDefault()
	config.Service.Server = server
	return config.Persist(filename)
}

func (c *Config) Persist(filename string) error {
	contents, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.WriteFile(filename, contents, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Service.Server == "" {
		errs = append(errs, errors.New("no server found"))
	} else {
		u, err := url.Parse(c.Service.Server)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid server format %q: %w", c.Service.Server, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("invalid server format %q: scheme must be http or https", c.Service.Server))
		} else if u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid server format %q: no host", c.Service.Server))
		}
	}
	if c.Service.Timeout != "" {
		if _, err := time.ParseDuration(c.Service.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("invalid timeout %q", c.Service.Timeout))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
