package bootstrap

import (
	"database/sql"
	"fmt"

	"github.com/clusterkv/go-cache-gateway/config"
	"github.com/clusterkv/go-cache-gateway/internal/storage/postgres"
)

// OpenDB opens the Postgres audit store. Returns (nil, nil) when auditing
// is not configured.
func OpenDB(cfg *config.Config) (*sql.DB, error) {
	if !cfg.AuditEnabled() {
		return nil, nil
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("audit db: %w", err)
	}

	return db, nil
}
