package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"farmai-backend/internal/bootstrap"
	"farmai-backend/internal/shared/config"
	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/storage/db"
)

var errNoCacheDatabase = errors.New("DATABASE_URL or CACHE_SQLITE_PATH must be set")

func migrateCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the upstream cache schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), config.Load(), purge, cmd)
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "delete expired cache rows after migrating")
	return cmd
}

func runMigrate(ctx context.Context, cfg config.Config, purge bool, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	driver, dsn := bootstrap.CacheTarget(cfg)
	if driver == "" {
		return errNoCacheDatabase
	}

	sqlDB, err := db.Connect(ctx, driver, dsn, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", driver)

	if !purge {
		return nil
	}
	removed, err := cache.NewSQLCache(sqlDB).Purge(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired cache rows\n", removed)
	return nil
}
