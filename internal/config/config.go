package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrMissingDatabaseURL is returned when no database connection string is configured
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

	// ErrMissingSessionSecret is returned in production when the console is
	// enabled without SESSION_SECRET
	ErrMissingSessionSecret = errors.New("SESSION_SECRET is required in production when the console is enabled")
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Console   ConsoleConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	// URL is a PostgreSQL connection string (DATABASE_URL)
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// ConnectTimeout bounds the startup ping retries (seconds)
	ConnectTimeout int
	// AutoMigrate applies the embedded migrations at startup
	AutoMigrate bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout  int
	WriteTimeout int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests.
	// Use "*" to allow all origins.
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	// WhitelistIPs bypass rate limiting
	WhitelistIPs []string
	// WhitelistPaths bypass rate limiting (e.g., /health)
	WhitelistPaths []string
}

// ConsoleConfig configures the server-rendered admin console
type ConsoleConfig struct {
	Enabled bool
	// APIBaseURL is where the console sends its REST requests.
	// Empty means the API served by this same process.
	APIBaseURL string
	// SessionSecret signs the logged-in marker cookie
	SessionSecret string
	// EphemeralSecret is set when Validate generated SessionSecret for this
	// process; sessions do not survive a restart
	EphemeralSecret bool
	// SessionTTL is the lifetime of the logged-in marker (minutes)
	SessionTTL int
	// RequestTimeout is the console HTTP client timeout (seconds)
	RequestTimeout int
}

// JobsConfig configures background jobs
type JobsConfig struct {
	OrphanReportEnabled bool
	OrphanReportCron    string
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ConnectTimeoutDuration returns the startup connect budget as duration
func (d *DatabaseConfig) ConnectTimeoutDuration() time.Duration {
	return time.Duration(d.ConnectTimeout) * time.Second
}

// SessionTTLDuration returns the console session lifetime as duration
func (c *ConsoleConfig) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// RequestTimeoutDuration returns the console client timeout as duration
func (c *ConsoleConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = v.GetString("DATABASE_URL")
	}

	// PORT is the conventional variable on hosting platforms
	if port := v.GetInt("PORT"); port > 0 {
		cfg.App.Port = port
	}

	// FRONTEND_URL extends the CORS allow-list
	if frontend := strings.TrimSpace(v.GetString("FRONTEND_URL")); frontend != "" {
		cfg.CORS.AllowedOrigins = appendUnique(cfg.CORS.AllowedOrigins, frontend)
	}

	if cfg.Console.SessionSecret == "" {
		cfg.Console.SessionSecret = v.GetString("SESSION_SECRET")
	}

	return &cfg, nil
}

// IsProduction reports whether the app runs in the production environment
func (a *AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

// Validate checks the settings without which the process cannot start.
// Outside production a missing console session secret is replaced by a
// random one and EphemeralSecret is set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrMissingDatabaseURL
	}
	if c.Console.Enabled && c.Console.SessionSecret == "" {
		if c.App.IsProduction() {
			return ErrMissingSessionSecret
		}
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		c.Console.SessionSecret = secret
		c.Console.EphemeralSecret = true
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "EcoStock API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 3001)

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.connectTimeout", 30)
	v.SetDefault("database.autoMigrate", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000", "https://ecostockfinal.vercel.app"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Content-Type", "Authorization"})
	v.SetDefault("cors.exposedHeaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 300)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db"})

	// Console defaults
	v.SetDefault("console.enabled", true)
	v.SetDefault("console.apiBaseURL", "")
	v.SetDefault("console.sessionSecret", "")
	v.SetDefault("console.sessionTTL", 480)
	v.SetDefault("console.requestTimeout", 15)

	// Jobs defaults
	v.SetDefault("jobs.orphanReportEnabled", true)
	v.SetDefault("jobs.orphanReportCron", "@hourly")
}
