package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// User cache type constants
const (
	UserCacheTypeMemory     = "memory"
	UserCacheTypeRedis      = "redis"
	UserCacheTypeRedisAside = "redis-aside"
)

// Metrics cache type constants
const (
	MetricsCacheTypeMemory     = "memory"
	MetricsCacheTypeRedis      = "redis"
	MetricsCacheTypeRedisAside = "redis-aside"
)

// Database driver constants
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
)

const defaultJWTSecret = "your-256-bit-secret-change-in-production"

type Config struct {
	// Server settings
	ServerAddr   string
	Environment  string
	IsProduction bool
	CORSOrigins  []string

	// Session token settings (local credential path)
	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string
	DBInitTimeout  time.Duration

	// External identity provider
	ExternalAuthEnabled bool
	ExternalTenantID    string
	ExternalClientID    string
	ExternalIssuer      string
	ExternalAudience    string
	ExternalJWKSURL     string

	// Signing key retrieval
	JWKSCacheTTL      time.Duration
	JWKSCacheSize     int
	JWKSFetchTimeout  time.Duration
	JWKSMaxRetries    int
	JWKSRetryDelay    time.Duration
	JWKSMaxRetryDelay time.Duration

	// Rate limiting
	EnableRateLimit bool
	RateLimitStore  string // "memory" or "redis"
	RateLimitWindow time.Duration
	AuthRateLimit   int // requests per window on /api/auth
	APIRateLimit    int // requests per window on the resource API

	// Redis
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration

	// User cache
	UserCacheType string
	UserCacheTTL  time.Duration
	UserCacheSize int

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsCacheType           string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", DatabaseDriverSQLite)
	var dsn string
	if driver == DatabaseDriverSQLite {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "taskboard.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	environment := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		Environment:  environment,
		IsProduction: environment == "production",
		CORSOrigins:  getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiration: getEnvDuration("JWT_EXPIRATION", 7*24*time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		DBInitTimeout:  getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),

		ExternalAuthEnabled: getEnvBool("EXTERNAL_AUTH_ENABLED", false),
		ExternalTenantID:    getEnv("EXTERNAL_TENANT_ID", ""),
		ExternalClientID:    getEnv("EXTERNAL_CLIENT_ID", ""),
		ExternalIssuer:      getEnv("EXTERNAL_ISSUER", ""),
		ExternalAudience:    getEnv("EXTERNAL_AUDIENCE", ""),
		ExternalJWKSURL:     getEnv("EXTERNAL_JWKS_URL", ""),

		JWKSCacheTTL:      getEnvDuration("JWKS_CACHE_TTL", time.Hour),
		JWKSCacheSize:     getEnvInt("JWKS_CACHE_SIZE", 10),
		JWKSFetchTimeout:  getEnvDuration("JWKS_FETCH_TIMEOUT", 10*time.Second),
		JWKSMaxRetries:    getEnvInt("JWKS_MAX_RETRIES", 3),
		JWKSRetryDelay:    getEnvDuration("JWKS_RETRY_DELAY", 500*time.Millisecond),
		JWKSMaxRetryDelay: getEnvDuration("JWKS_MAX_RETRY_DELAY", 5*time.Second),

		EnableRateLimit: getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:  getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 5),
		APIRateLimit:    getEnvInt("API_RATE_LIMIT", 100),

		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisConnTimeout: getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),

		UserCacheType: getEnv("USER_CACHE_TYPE", UserCacheTypeMemory),
		UserCacheTTL:  getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		UserCacheSize: getEnvInt("USER_CACHE_SIZE", 1000),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsCacheType:           getEnv("METRICS_CACHE_TYPE", MetricsCacheTypeMemory),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 5*time.Minute),
	}

	cfg.applyExternalDefaults()
	return cfg
}

// applyExternalDefaults derives issuer, audience and JWKS URL from the tenant
// and client ids when they are not set explicitly.
func (c *Config) applyExternalDefaults() {
	if c.ExternalTenantID != "" {
		if c.ExternalIssuer == "" {
			c.ExternalIssuer = fmt.Sprintf(
				"https://login.microsoftonline.com/%s/v2.0",
				c.ExternalTenantID,
			)
		}
		if c.ExternalJWKSURL == "" {
			c.ExternalJWKSURL = fmt.Sprintf(
				"https://login.microsoftonline.com/%s/discovery/v2.0/keys",
				c.ExternalTenantID,
			)
		}
	}
	if c.ExternalAudience == "" {
		c.ExternalAudience = c.ExternalClientID
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DatabaseDriverSQLite, DatabaseDriverPostgres:
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER value: %q (must be %q or %q)",
			c.DatabaseDriver, DatabaseDriverSQLite, DatabaseDriverPostgres)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}

	if c.ExternalAuthEnabled {
		if c.ExternalIssuer == "" || c.ExternalAudience == "" || c.ExternalJWKSURL == "" {
			return errors.New(
				"EXTERNAL_AUTH_ENABLED requires EXTERNAL_TENANT_ID/EXTERNAL_CLIENT_ID " +
					"or explicit EXTERNAL_ISSUER, EXTERNAL_AUDIENCE and EXTERNAL_JWKS_URL",
			)
		}
		if c.JWKSCacheSize <= 0 {
			return fmt.Errorf("JWKS_CACHE_SIZE must be positive, got %d", c.JWKSCacheSize)
		}
		if c.JWKSCacheTTL <= 0 {
			return fmt.Errorf("JWKS_CACHE_TTL must be positive, got %s", c.JWKSCacheTTL)
		}
		if c.JWKSFetchTimeout <= 0 {
			return fmt.Errorf("JWKS_FETCH_TIMEOUT must be positive, got %s", c.JWKSFetchTimeout)
		}
		if c.JWKSMaxRetries < 0 {
			return fmt.Errorf("JWKS_MAX_RETRIES must not be negative, got %d", c.JWKSMaxRetries)
		}
	}

	if c.RateLimitStore != RateLimitStoreMemory && c.RateLimitStore != RateLimitStoreRedis {
		return fmt.Errorf("invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
			c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis)
	}
	if c.EnableRateLimit && c.RateLimitStore == RateLimitStoreRedis && c.RedisAddr == "" {
		return errors.New(`RATE_LIMIT_STORE="redis" requires REDIS_ADDR`)
	}
	if c.EnableRateLimit && c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}

	if !validCacheType(c.UserCacheType) {
		return fmt.Errorf("invalid USER_CACHE_TYPE value: %q (must be %q, %q, or %q)",
			c.UserCacheType, UserCacheTypeMemory, UserCacheTypeRedis, UserCacheTypeRedisAside)
	}
	if c.UserCacheType != UserCacheTypeMemory && c.RedisAddr == "" {
		return fmt.Errorf("USER_CACHE_TYPE=%q requires REDIS_ADDR", c.UserCacheType)
	}
	if c.UserCacheType == UserCacheTypeMemory && c.UserCacheSize <= 0 {
		return fmt.Errorf("USER_CACHE_SIZE must be positive, got %d", c.UserCacheSize)
	}
	if c.UserCacheTTL <= 0 {
		return fmt.Errorf("USER_CACHE_TTL must be a positive duration, got %s", c.UserCacheTTL)
	}
	if !validCacheType(c.MetricsCacheType) {
		return fmt.Errorf("invalid METRICS_CACHE_TYPE value: %q (must be %q, %q, or %q)",
			c.MetricsCacheType, MetricsCacheTypeMemory, MetricsCacheTypeRedis,
			MetricsCacheTypeRedisAside)
	}
	if c.MetricsCacheType != MetricsCacheTypeMemory && c.RedisAddr == "" {
		return fmt.Errorf("METRICS_CACHE_TYPE=%q requires REDIS_ADDR", c.MetricsCacheType)
	}

	return nil
}

func validCacheType(t string) bool {
	switch t {
	case UserCacheTypeMemory, UserCacheTypeRedis, UserCacheTypeRedisAside:
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if parts := splitAndTrim(value, ","); len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
