package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for storage driver %q", DriverPostgres)
		}
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required for storage driver %q", DriverMongo)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverPostgres, DriverMongo, c.Storage.Driver)
	}

	switch c.Generator.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("generator.provider must be %q or %q (got %q)", ProviderGemini, ProviderAnthropic, c.Generator.Provider)
	}
	if c.Generator.MaxRetries < 1 {
		return fmt.Errorf("generator.max_retries must be >= 1 (got %d)", c.Generator.MaxRetries)
	}

	if err := c.Planner.validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	if c.RateLimit.GeneratePerMinute <= 0 {
		return fmt.Errorf("rate_limit.generate_per_minute must be > 0 (got %d)", c.RateLimit.GeneratePerMinute)
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be > 0 (got %d)", c.RateLimit.Burst)
	}

	if c.S3.Enabled() && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		return fmt.Errorf("s3.access_key and s3.secret_key are required when s3.endpoint is set")
	}

	if c.Places.CacheSize <= 0 {
		return fmt.Errorf("places.cache_size must be > 0 (got %d)", c.Places.CacheSize)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be within [0, max_conns] (got %d, max_conns %d)", d.MinConns, d.MaxConns)
	}
	if d.StatementTimeout < 0 {
		return fmt.Errorf("statement_timeout must not be negative (got %s)", d.StatementTimeout)
	}
	return nil
}

func (p *PlannerConfig) validate() error {
	if p.MaxTripDays <= 0 {
		return fmt.Errorf("max_trip_days must be > 0 (got %d)", p.MaxTripDays)
	}
	if p.SessionCapacity <= 0 {
		return fmt.Errorf("session_capacity must be > 0 (got %d)", p.SessionCapacity)
	}
	if p.MaxListLimit <= 0 {
		return fmt.Errorf("max_list_limit must be > 0 (got %d)", p.MaxListLimit)
	}
	if p.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must be >= 0 (got %d)", p.ArchiveRetentionDays)
	}
	return nil
}
