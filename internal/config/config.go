package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	Generator GeneratorConfig `yaml:"generator"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Places    PlacesConfig    `yaml:"places"`
	S3        S3Config        `yaml:"s3"`
	Auth      AuthConfig      `yaml:"auth"`
	Planner   PlannerConfig   `yaml:"planner"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// StorageConfig selects the itinerary store.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"15s"`
}

// MongoConfig holds MongoDB settings for the mongo storage driver.
type MongoConfig struct {
	URI        string `yaml:"uri"        env:"MONGO_URI"`
	Database   string `yaml:"database"   env:"MONGO_DATABASE"   env-default:"tripplanner"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"itineraries"`
}

// RedisConfig holds the sync event broker settings. An empty Addr disables
// publishing to Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Channel  string `yaml:"channel"  env:"REDIS_CHANNEL"  env-default:"itinerary-sync"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// Generator providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// GeneratorConfig selects the model backend used for AI itineraries.
type GeneratorConfig struct {
	Provider   string `yaml:"provider"    env:"GENERATOR_PROVIDER"    env-default:"gemini"`
	MaxRetries int    `yaml:"max_retries" env:"GENERATOR_MAX_RETRIES" env-default:"3"`
}

// GeminiConfig holds Gemini generation settings. An empty APIKey disables
// AI generation when Gemini is the selected provider.
type GeminiConfig struct {
	APIKey          string        `yaml:"api_key"           env:"GEMINI_API_KEY"`
	Model           string        `yaml:"model"             env:"GEMINI_MODEL"             env-default:"gemini-2.0-flash"`
	Temperature     float32       `yaml:"temperature"       env:"GEMINI_TEMPERATURE"       env-default:"0.7"`
	TopP            float32       `yaml:"top_p"             env:"GEMINI_TOP_P"             env-default:"0.8"`
	TopK            float32       `yaml:"top_k"             env:"GEMINI_TOP_K"             env-default:"40"`
	MaxOutputTokens int32         `yaml:"max_output_tokens" env:"GEMINI_MAX_OUTPUT_TOKENS" env-default:"8192"`
	Timeout         time.Duration `yaml:"timeout"           env:"GEMINI_TIMEOUT"           env-default:"60s"`
}

// AnthropicConfig holds Claude generation settings. An empty APIKey
// disables AI generation when Anthropic is the selected provider.
type AnthropicConfig struct {
	APIKey    string        `yaml:"api_key"    env:"ANTHROPIC_API_KEY"`
	BaseURL   string        `yaml:"base_url"   env:"ANTHROPIC_BASE_URL"`
	Model     string        `yaml:"model"      env:"ANTHROPIC_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"ANTHROPIC_MAX_TOKENS" env-default:"8192"`
	Timeout   time.Duration `yaml:"timeout"    env:"ANTHROPIC_TIMEOUT"    env-default:"90s"`
}

// PlacesConfig holds the place/photo lookup settings. An empty APIKey
// makes every lookup fall back to stock images.
type PlacesConfig struct {
	APIKey    string        `yaml:"api_key"    env:"PLACES_API_KEY"`
	BaseURL   string        `yaml:"base_url"   env:"PLACES_BASE_URL"   env-default:"https://maps.googleapis.com/maps/api/place"`
	CacheSize int           `yaml:"cache_size" env:"PLACES_CACHE_SIZE" env-default:"1024"`
	Timeout   time.Duration `yaml:"timeout"    env:"PLACES_TIMEOUT"    env-default:"10s"`
}

// S3Config holds object storage settings for itinerary exports. An empty
// Endpoint disables exports.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"   env:"S3_ENDPOINT"`
	Region    string `yaml:"region"     env:"S3_REGION"     env-default:"us-east-1"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket    string `yaml:"bucket"     env:"S3_BUCKET"     env-default:"itinerary-exports"`
	UseSSL    bool   `yaml:"use_ssl"    env:"S3_USE_SSL"    env-default:"false"`
}

// Enabled reports whether an endpoint is configured.
func (c S3Config) Enabled() bool { return c.Endpoint != "" }

// AuthConfig holds bearer token validation settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"tripplanner"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// PlannerConfig holds itinerary editing limits.
type PlannerConfig struct {
	MaxTripDays          int `yaml:"max_trip_days"          env:"PLANNER_MAX_TRIP_DAYS"          env-default:"60"`
	SessionCapacity      int `yaml:"session_capacity"       env:"PLANNER_SESSION_CAPACITY"       env-default:"10000"`
	MaxListLimit         int `yaml:"max_list_limit"         env:"PLANNER_MAX_LIST_LIMIT"         env-default:"100"`
	ArchiveRetentionDays int `yaml:"archive_retention_days" env:"PLANNER_ARCHIVE_RETENTION_DAYS" env-default:"90"`
}

// RateLimitConfig throttles AI generation per client IP.
type RateLimitConfig struct {
	GeneratePerMinute int           `yaml:"generate_per_minute" env:"RATE_LIMIT_GENERATE_PER_MINUTE" env-default:"5"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"2"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SplitList splits a comma-separated setting, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
