// AngelaMos | 2026
// migrate.go

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/carterperez-dev/flightalerts/internal/core"
)

func migrateUpAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	applied, err := core.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}

	logger.Info("migrations applied", "count", applied)
	return nil
}

func migrateDownAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	version, err := core.Rollback(ctx, db.DB)
	if errors.Is(err, core.ErrNoMigrations) {
		logger.Info("nothing to roll back")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("migration rolled back", "version", version)
	return nil
}

func migrateVersionAction(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	version, err := core.MigrationVersion(ctx, db.DB)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, version)
	return err
}
