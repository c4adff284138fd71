package bootstrap

import (
	"fmt"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"

	"go.uber.org/zap"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.JWTExpiration > 30*24*time.Hour {
		zap.L().Warn("[Server] Session tokens live longer than 30 days",
			zap.Duration("jwt_expiration", cfg.JWTExpiration))
	}
	if cfg.IsProduction && len(cfg.CORSOrigins) == 0 {
		zap.L().Warn("[Server] No CORS origins configured; browser clients will be rejected")
	}
	return nil
}
