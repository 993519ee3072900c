package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"carboquiz/internal/catalog"
	"carboquiz/internal/config"
	pgloader "carboquiz/internal/infra/postgres"
	pgmigrations "carboquiz/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and seeds the built-in question
// catalog if none is present.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	if err := seedCatalog(ctx, db); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}

// seedCatalog installs the built-in questions without clobbering a catalog
// that was edited in place.
func seedCatalog(ctx context.Context, db *bun.DB) error {
	data, err := json.Marshal(catalog.Default())
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO catalog (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
		pgloader.CatalogID, string(data))
	return err
}
