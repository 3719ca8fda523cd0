package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml"
)

const (
	DefaultListenAddress   = "0.0.0.0:8645"
	DefaultAPIBaseURL      = "http://localhost:8000"
	DefaultRefreshInterval = "10m"
	DefaultProbeInterval   = "30s"
)

var (
	ErrInvalidListenAddress   = errors.New("invalid listen address")
	ErrInvalidAPIBaseURL      = errors.New("invalid API base URL")
	ErrInvalidRefreshInterval = errors.New("invalid refresh interval")
	ErrInvalidProbeInterval   = errors.New("invalid probe interval")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// CORS defines the server CORS configuration
type CORS struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
}

// DefaultCORSConfig returns the default CORS configuration
func DefaultCORSConfig() *CORS {
	return &CORS{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}
}

// Config defines the base-level dashboard configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The address at which the dashboard will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`

	// The base URL of the upstream rate aggregation API
	APIBaseURL string `toml:"api_base_url"`

	// The interval between automatic silent rate refreshes
	RefreshInterval string `toml:"refresh_interval"`

	// The interval between upstream connectivity probes
	ProbeInterval string `toml:"probe_interval"`
}

// DefaultConfig returns the default dashboard configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress:   DefaultListenAddress,
		CORSConfig:      DefaultCORSConfig(),
		APIBaseURL:      DefaultAPIBaseURL,
		RefreshInterval: DefaultRefreshInterval,
		ProbeInterval:   DefaultProbeInterval,
	}
}

// ValidateConfig validates the dashboard configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	if config.APIBaseURL == "" {
		return ErrInvalidAPIBaseURL
	}

	if _, err := time.ParseDuration(config.RefreshInterval); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRefreshInterval, err)
	}

	if _, err := time.ParseDuration(config.ProbeInterval); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProbeInterval, err)
	}

	return nil
}

// RefreshIntervalDuration returns the parsed refresh interval
func (c *Config) RefreshIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		d, _ = time.ParseDuration(DefaultRefreshInterval)
	}

	return d
}

// ProbeIntervalDuration returns the parsed probe interval
func (c *Config) ProbeIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.ProbeInterval)
	if err != nil {
		d, _ = time.ParseDuration(DefaultProbeInterval)
	}

	return d
}

// Read reads the configuration from the given path
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	var cfg Config

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
