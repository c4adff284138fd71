package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a minimal configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		DatabaseDriver:   DatabaseDriverSQLite,
		DatabaseDSN:      ":memory:",
		JWTSecret:        "test-secret",
		JWTExpiration:    time.Hour,
		RateLimitStore:   RateLimitStoreMemory,
		RateLimitWindow:  15 * time.Minute,
		EnableRateLimit:  true,
		UserCacheType:    UserCacheTypeMemory,
		UserCacheTTL:     5 * time.Minute,
		UserCacheSize:    100,
		MetricsCacheType: MetricsCacheTypeMemory,
		JWKSCacheSize:    10,
		JWKSCacheTTL:     time.Hour,
		JWKSFetchTimeout: 10 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid memory store",
			mutate: func(c *Config) {},
		},
		{
			name: "valid redis store",
			mutate: func(c *Config) {
				c.RateLimitStore = RateLimitStoreRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name:        "invalid store - typo",
			mutate:      func(c *Config) { c.RateLimitStore = "reddis" },
			expectError: true,
			errorMsg:    `invalid RATE_LIMIT_STORE value: "reddis"`,
		},
		{
			name:        "invalid store - uppercase",
			mutate:      func(c *Config) { c.RateLimitStore = "MEMORY" },
			expectError: true,
			errorMsg:    `invalid RATE_LIMIT_STORE value: "MEMORY"`,
		},
		{
			name: "redis store without address",
			mutate: func(c *Config) {
				c.RateLimitStore = RateLimitStoreRedis
				c.RedisAddr = ""
			},
			expectError: true,
			errorMsg:    `RATE_LIMIT_STORE="redis" requires REDIS_ADDR`,
		},
		{
			name:        "zero rate limit window",
			mutate:      func(c *Config) { c.RateLimitWindow = 0 },
			expectError: true,
			errorMsg:    "RATE_LIMIT_WINDOW must be positive",
		},
		{
			name:        "unknown database driver",
			mutate:      func(c *Config) { c.DatabaseDriver = "mysql" },
			expectError: true,
			errorMsg:    `invalid DATABASE_DRIVER value: "mysql"`,
		},
		{
			name:        "empty dsn",
			mutate:      func(c *Config) { c.DatabaseDSN = "" },
			expectError: true,
			errorMsg:    "DATABASE_DSN is required",
		},
		{
			name: "default secret in production",
			mutate: func(c *Config) {
				c.IsProduction = true
				c.JWTSecret = defaultJWTSecret
			},
			expectError: true,
			errorMsg:    "JWT_SECRET must be changed in production",
		},
		{
			name:        "non-positive jwt expiration",
			mutate:      func(c *Config) { c.JWTExpiration = 0 },
			expectError: true,
			errorMsg:    "JWT_EXPIRATION must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestExternalAuthValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name: "fully configured",
			mutate: func(c *Config) {
				c.ExternalAuthEnabled = true
				c.ExternalIssuer = "https://issuer.example.com"
				c.ExternalAudience = "api://client"
				c.ExternalJWKSURL = "https://issuer.example.com/keys"
			},
		},
		{
			name: "missing jwks url",
			mutate: func(c *Config) {
				c.ExternalAuthEnabled = true
				c.ExternalIssuer = "https://issuer.example.com"
				c.ExternalAudience = "api://client"
			},
			expectError: true,
			errorMsg:    "EXTERNAL_AUTH_ENABLED requires",
		},
		{
			name: "zero key cache size",
			mutate: func(c *Config) {
				c.ExternalAuthEnabled = true
				c.ExternalIssuer = "https://issuer.example.com"
				c.ExternalAudience = "api://client"
				c.ExternalJWKSURL = "https://issuer.example.com/keys"
				c.JWKSCacheSize = 0
			},
			expectError: true,
			errorMsg:    "JWKS_CACHE_SIZE must be positive",
		},
		{
			name: "negative retries",
			mutate: func(c *Config) {
				c.ExternalAuthEnabled = true
				c.ExternalIssuer = "https://issuer.example.com"
				c.ExternalAudience = "api://client"
				c.ExternalJWKSURL = "https://issuer.example.com/keys"
				c.JWKSMaxRetries = -1
			},
			expectError: true,
			errorMsg:    "JWKS_MAX_RETRIES must not be negative",
		},
		{
			name:   "disabled ignores missing settings",
			mutate: func(c *Config) { c.ExternalAuthEnabled = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCacheTypeValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name: "redis user cache with redis address",
			mutate: func(c *Config) {
				c.UserCacheType = UserCacheTypeRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name: "redis-aside metrics cache with redis address",
			mutate: func(c *Config) {
				c.MetricsCacheType = MetricsCacheTypeRedisAside
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name:        "invalid user cache type",
			mutate:      func(c *Config) { c.UserCacheType = "invalid" },
			expectError: true,
			errorMsg:    `invalid USER_CACHE_TYPE value: "invalid"`,
		},
		{
			name:        "redis user cache without redis address",
			mutate:      func(c *Config) { c.UserCacheType = UserCacheTypeRedis },
			expectError: true,
			errorMsg:    `USER_CACHE_TYPE="redis" requires REDIS_ADDR`,
		},
		{
			name:        "zero user cache ttl",
			mutate:      func(c *Config) { c.UserCacheTTL = 0 },
			expectError: true,
			errorMsg:    "USER_CACHE_TTL must be a positive duration",
		},
		{
			name:        "empty memory user cache",
			mutate:      func(c *Config) { c.UserCacheSize = 0 },
			expectError: true,
			errorMsg:    "USER_CACHE_SIZE must be positive",
		},
		{
			name: "redis user cache ignores size",
			mutate: func(c *Config) {
				c.UserCacheType = UserCacheTypeRedisAside
				c.RedisAddr = "localhost:6379"
				c.UserCacheSize = 0
			},
		},
		{
			name:        "invalid metrics cache type",
			mutate:      func(c *Config) { c.MetricsCacheType = "memcached" },
			expectError: true,
			errorMsg:    `invalid METRICS_CACHE_TYPE value: "memcached"`,
		},
		{
			name:        "redis-aside metrics cache without redis address",
			mutate:      func(c *Config) { c.MetricsCacheType = MetricsCacheTypeRedisAside },
			expectError: true,
			errorMsg:    `METRICS_CACHE_TYPE="redis-aside" requires REDIS_ADDR`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("EXTERNAL_TENANT_ID", "")
	t.Setenv("EXTERNAL_CLIENT_ID", "")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, 100, cfg.APIRateLimit)
	assert.Equal(t, time.Hour, cfg.JWKSCacheTTL)
	assert.Equal(t, 10, cfg.JWKSCacheSize)
}

func TestLoad_ExternalDefaultsFromTenant(t *testing.T) {
	t.Setenv("EXTERNAL_TENANT_ID", "tenant-123")
	t.Setenv("EXTERNAL_CLIENT_ID", "client-456")
	t.Setenv("EXTERNAL_ISSUER", "")
	t.Setenv("EXTERNAL_AUDIENCE", "")
	t.Setenv("EXTERNAL_JWKS_URL", "")

	cfg := Load()

	assert.Equal(t, "https://login.microsoftonline.com/tenant-123/v2.0", cfg.ExternalIssuer)
	assert.Equal(t,
		"https://login.microsoftonline.com/tenant-123/discovery/v2.0/keys",
		cfg.ExternalJWKSURL,
	)
	assert.Equal(t, "client-456", cfg.ExternalAudience)
}

func TestGetEnvSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvSlice("TEST_SLICE", nil))

	t.Setenv("TEST_SLICE", " , ")
	assert.Equal(t, []string{"x"}, getEnvSlice("TEST_SLICE", []string{"x"}))
}

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, "memory", UserCacheTypeMemory)
	assert.Equal(t, "redis", UserCacheTypeRedis)
	assert.Equal(t, "redis-aside", UserCacheTypeRedisAside)
	assert.Equal(t, "redis-aside", MetricsCacheTypeRedisAside)
}
