package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the dashboard service.
// Environment variables are automatically parsed from the NUTRIDASH_ prefix.
type Config struct {
	// Build target selects the datastore backend: sheets (remote spreadsheet)
	// or local (sqlite file for development)
	BuildTarget string `envconfig:"BUILD_TARGET" default:"sheets"`

	// Derived or override store driver
	StoreDriver string `envconfig:"STORE_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Remote spreadsheet configuration
	SpreadsheetID   string `envconfig:"SPREADSHEET_ID" default:""`
	CredentialsFile string `envconfig:"CREDENTIALS_FILE" default:"credentials.json"`

	// Local backend configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:"nutridash.db"`

	// Calendar-day bucketing timezone
	Timezone string `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`

	// Auth configuration
	JWTSecret         string `envconfig:"JWT_SECRET" default:""`
	SessionTTLHours   int    `envconfig:"SESSION_TTL_HOURS" default:"24"`
	AdminEmail        string `envconfig:"ADMIN_EMAIL" default:""`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" default:""`

	// Outbound WhatsApp gateway for alarm reminders
	GatewayURL   string `envconfig:"GATEWAY_URL" default:""`
	GatewayToken string `envconfig:"GATEWAY_TOKEN" default:""`

	// Remote call hardening
	RemoteTimeoutSeconds int `envconfig:"REMOTE_TIMEOUT_SECONDS" default:"10"`
	RemoteRetries        int `envconfig:"REMOTE_RETRIES" default:"1"`

	// Read cache for dashboard views
	CacheTTLSeconds int `envconfig:"CACHE_TTL_SECONDS" default:"30"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives StoreDriver when set to
// "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDriver string

	switch c.BuildTarget {
	case "sheets":
		defaultDriver = "sheets"
	case "local":
		defaultDriver = "sqlite"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.StoreDriver == "" || c.StoreDriver == "auto" {
		c.StoreDriver = defaultDriver
	}

	allowed := map[string]bool{"sheets": true, "sqlite": true}
	if !allowed[c.StoreDriver] {
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	if c.StoreDriver == "sheets" && c.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required for the sheets driver")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: NUTRIDASH_SPREADSHEET_ID, NUTRIDASH_HTTP_PORT
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NUTRIDASH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("store_driver", cfg.StoreDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("timezone", cfg.Timezone).
		Bool("spreadsheet_id_present", cfg.SpreadsheetID != "").
		Bool("gateway_present", cfg.GatewayURL != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:               "local",
		StoreDriver:               "sqlite",
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		SQLitePath:                "",
		Timezone:                  "America/Sao_Paulo",
		JWTSecret:                 "test-secret",
		SessionTTLHours:           1,
		RemoteTimeoutSeconds:      2,
		RemoteRetries:             0,
		CacheTTLSeconds:           1,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// RemoteTimeout returns the per-call timeout for remote store access.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.RemoteTimeoutSeconds) * time.Second
}

// Location resolves the configured timezone, falling back to UTC when the
// name cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Str("timezone", c.Timezone).Err(err).Msg("Falling back to UTC")
		return time.UTC
	}
	return loc
}
