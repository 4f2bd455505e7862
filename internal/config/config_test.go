package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

storage:
  driver: "postgres"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

redis:
  addr: "localhost:6379"
  channel: "sync-test"

gemini:
  api_key: "g-key"
  model: "gemini-2.0-flash-exp"
  temperature: 0.5
  max_output_tokens: 4096

places:
  api_key: "p-key"
  cache_size: 256
  timeout: "3s"

s3:
  endpoint: "localhost:9000"
  access_key: "minio"
  secret_key: "minio123"
  bucket: "exports"

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  jwt_issuer: "trips"

planner:
  max_trip_days: 30
  session_capacity: 500

rate_limit:
  generate_per_minute: 10
  burst: 3

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Storage
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("storage.driver = %q, want %q", cfg.Storage.Driver, DriverPostgres)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Mongo.Collection != "itineraries" {
		t.Errorf("mongo.collection = %q, want default", cfg.Mongo.Collection)
	}

	// Collaborators
	if !cfg.Redis.Enabled() || cfg.Redis.Channel != "sync-test" {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash-exp" {
		t.Errorf("gemini.model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.Temperature != 0.5 {
		t.Errorf("gemini.temperature = %v, want 0.5", cfg.Gemini.Temperature)
	}
	if cfg.Gemini.TopK != 40 {
		t.Errorf("gemini.top_k = %v, want default 40", cfg.Gemini.TopK)
	}
	if cfg.Places.CacheSize != 256 || cfg.Places.Timeout != 3*time.Second {
		t.Errorf("places = %+v", cfg.Places)
	}
	if !cfg.S3.Enabled() || cfg.S3.Bucket != "exports" {
		t.Errorf("s3 = %+v", cfg.S3)
	}

	// Auth
	if cfg.Auth.JWTIssuer != "trips" {
		t.Errorf("auth.jwt_issuer = %q", cfg.Auth.JWTIssuer)
	}

	// Planner
	if cfg.Planner.MaxTripDays != 30 {
		t.Errorf("planner.max_trip_days = %d, want 30", cfg.Planner.MaxTripDays)
	}
	if cfg.Planner.SessionCapacity != 500 {
		t.Errorf("planner.session_capacity = %d, want 500", cfg.Planner.SessionCapacity)
	}
	if cfg.RateLimit.GeneratePerMinute != 10 || cfg.RateLimit.Burst != 3 {
		t.Errorf("rate_limit = %+v", cfg.RateLimit)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("PLANNER_MAX_TRIP_DAYS", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Planner.MaxTripDays != 14 {
		t.Errorf("planner.max_trip_days = %d, want 14 (ENV override)", cfg.Planner.MaxTripDays)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("storage.driver = %q, want default postgres", cfg.Storage.Driver)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis should be disabled without an address")
	}
	if cfg.S3.Enabled() {
		t.Error("s3 should be disabled without an endpoint")
	}
	if cfg.Planner.SessionCapacity != 10000 {
		t.Errorf("planner.session_capacity = %d, want 10000", cfg.Planner.SessionCapacity)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadFrom_ExplicitPathIgnoresConfigPathEnv(t *testing.T) {
	validEnv(t)
	dir := t.TempDir()
	path := writeYAML(t, dir, "server:\n  port: 7070\n")
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "jwt secret too short", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "jwt secret empty", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "sqlite" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: true},
		{name: "max conns zero", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: true},
		{name: "min conns above max", mutate: func(c *Config) { c.Database.MinConns = 26 }, wantErr: true},
		{name: "negative statement timeout", mutate: func(c *Config) { c.Database.StatementTimeout = -time.Second }, wantErr: true},
		{
			name: "mongo ignores pool sizing",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverMongo
				c.Mongo.URI = "mongodb://localhost:27017"
				c.Database.MaxConns = 0
			},
		},
		{
			name: "mongo without uri",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverMongo
				c.Mongo.URI = ""
			},
			wantErr: true,
		},
		{
			name: "mongo with uri and no dsn",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverMongo
				c.Mongo.URI = "mongodb://localhost:27017"
				c.Database.DSN = ""
			},
		},
		{name: "max trip days zero", mutate: func(c *Config) { c.Planner.MaxTripDays = 0 }, wantErr: true},
		{name: "session capacity negative", mutate: func(c *Config) { c.Planner.SessionCapacity = -1 }, wantErr: true},
		{name: "list limit zero", mutate: func(c *Config) { c.Planner.MaxListLimit = 0 }, wantErr: true},
		{name: "negative retention", mutate: func(c *Config) { c.Planner.ArchiveRetentionDays = -1 }, wantErr: true},
		{name: "rate zero", mutate: func(c *Config) { c.RateLimit.GeneratePerMinute = 0 }, wantErr: true},
		{name: "burst zero", mutate: func(c *Config) { c.RateLimit.Burst = 0 }, wantErr: true},
		{name: "unknown generator", mutate: func(c *Config) { c.Generator.Provider = "openai" }, wantErr: true},
		{name: "anthropic generator", mutate: func(c *Config) { c.Generator.Provider = ProviderAnthropic }},
		{name: "no generator retries", mutate: func(c *Config) { c.Generator.MaxRetries = 0 }, wantErr: true},
		{name: "places cache zero", mutate: func(c *Config) { c.Places.CacheSize = 0 }, wantErr: true},
		{name: "s3 without keys", mutate: func(c *Config) { c.S3.Endpoint = "localhost:9000" }, wantErr: true},
		{
			name: "s3 with keys",
			mutate: func(c *Config) {
				c.S3.Endpoint = "localhost:9000"
				c.S3.AccessKey = "a"
				c.S3.SecretKey = "s"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" GET, POST ,,OPTIONS ")
	want := []string{"GET", "POST", "OPTIONS"}
	if !slices.Equal(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if SplitList("") != nil {
		t.Error("SplitList(\"\") should be nil")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Storage:  StorageConfig{Driver: DriverPostgres},
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb", MaxConns: 25, MinConns: 5},
		Auth: AuthConfig{
			JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+",
		},
		Places:    PlacesConfig{CacheSize: 128},
		Generator: GeneratorConfig{Provider: ProviderGemini, MaxRetries: 3},
		Planner: PlannerConfig{
			MaxTripDays:     60,
			SessionCapacity: 100,
			MaxListLimit:    100,
		},
		RateLimit: RateLimitConfig{GeneratePerMinute: 5, Burst: 2},
	}
}
