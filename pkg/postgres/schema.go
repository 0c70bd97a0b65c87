package postgres

import (
	"embed"
	"errors"
	"fmt"

	"cost-tracker/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// ApplySchema creates the dimension tables, the fact table and the
// expenses_denorm view. With reset, the existing schema is dropped first.
func ApplySchema(cfg *config.DatabaseConfig, reset bool, logger *zap.Logger) error {
	src, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded schema: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.URL("pgx5"))
	if err != nil {
		return fmt.Errorf("create schema runner: %w", err)
	}
	defer m.Close()

	if reset {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("drop schema: %w", err)
		}
		logger.Info("Existing schema dropped")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info("Schema ready", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}
