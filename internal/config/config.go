package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	State         StateConfig
	Database      DatabaseConfig
	Geofence      GeofenceConfig
	Notify        NotifyConfig
	Observability ObservabilityConfig
	RateLimit     RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StateConfig selects the instance-state backend at startup.
type StateConfig struct {
	// Backend is "postgres" or "memory". The memory backend loses all
	// tenants and cooldown marks on restart; local development only.
	Backend string
}

// DatabaseConfig holds database configuration for the postgres backend
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// GeofenceConfig holds the process-wide fence; the same fence applies to
// every tenant.
type GeofenceConfig struct {
	TargetLat    float64
	TargetLon    float64
	RadiusMeters float64
}

// NotifyConfig holds cooldown and outbound SMS configuration
type NotifyConfig struct {
	CooldownWindow  time.Duration
	SenderID        string
	MessageBody     string
	VonageAPIKey    string
	VonageAPISecret string
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string
	OTELEnabled    bool
	ServiceName    string
	ServiceVersion string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables. Core option names
// (COOLDOWN_MIN, TARGET_LAT, TARGET_LON, RADIUS, MESSAGE_BODY,
// VONAGE_FROM) keep their historical spelling.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "3000"),
			ReadTimeout:  parseDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: parseDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  parseDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		State: StateConfig{
			Backend: getEnv("STATE_BACKEND", "postgres"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "gpsmessage"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "gpsmessage"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: parseInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: parseInt("DB_MAX_IDLE_CONNS", 5),
		},
		Geofence: GeofenceConfig{
			TargetLat:    parseFloat("TARGET_LAT", 35.681236),
			TargetLon:    parseFloat("TARGET_LON", 139.767125),
			RadiusMeters: parseFloat("RADIUS", 100),
		},
		Notify: NotifyConfig{
			CooldownWindow:  time.Duration(parseInt("COOLDOWN_MIN", 60)) * time.Minute,
			SenderID:        getEnv("VONAGE_FROM", "VONAGE_SMS"),
			MessageBody:     getEnv("MESSAGE_BODY", "Entered GeoFence"),
			VonageAPIKey:    getEnv("VONAGE_API_KEY", ""),
			VonageAPISecret: getEnv("VONAGE_API_SECRET", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			OTELEnabled:    parseBool("OTEL_ENABLED", false),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "gps-message"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "0.1.0"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: float64(parseInt("RATELIMIT_RPS", 10)),
			Burst:             parseInt("RATELIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.State.Backend {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres state backend")
		}
	case "memory":
	default:
		return fmt.Errorf("STATE_BACKEND must be postgres or memory, got %q", c.State.Backend)
	}

	if c.Geofence.RadiusMeters < 0 {
		return fmt.Errorf("RADIUS must be non-negative")
	}
	if c.Geofence.TargetLat < -90 || c.Geofence.TargetLat > 90 {
		return fmt.Errorf("TARGET_LAT must be within [-90, 90]")
	}
	if c.Geofence.TargetLon < -180 || c.Geofence.TargetLon > 180 {
		return fmt.Errorf("TARGET_LON must be within [-180, 180]")
	}
	if c.Notify.CooldownWindow < 0 {
		return fmt.Errorf("COOLDOWN_MIN must be non-negative")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func parseFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	d, err := time.ParseDuration(value)
	if err != nil {
		// Fallback to default
		d, _ = time.ParseDuration(defaultValue)
	}
	return d
}
