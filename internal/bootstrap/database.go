package bootstrap

import (
	"context"
	"fmt"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"go.uber.org/zap"
)

// initializeDatabase creates and initializes the database connection
func initializeDatabase(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	// Create timeout context for this specific operation
	ctx, cancel := context.WithTimeout(ctx, cfg.DBInitTimeout)
	defer cancel()

	db, err := store.New(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	zap.L().Info("[Server] Database ready", zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}
