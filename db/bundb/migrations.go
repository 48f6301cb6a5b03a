package bundb

import (
	"context"
	"fmt"
	"log/slog"

	directorymigrations "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/repositories/migrations"
	matchmigrations "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories/migrations"
	notificationmigrations "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/repositories/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations names one module's migration set.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists every module's migrations in dependency order: matches
// reference users and sports, notifications reference users.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{Name: "directory", Migrations: directorymigrations.Migrations},
		{Name: "match", Migrations: matchmigrations.Migrations},
		{Name: "notification", Migrations: notificationmigrations.Migrations},
	}
}

// Migrators returns one migrator per module, sharing the bun migration table.
func Migrators(db *bun.DB) []NamedMigrator {
	modules := Modules()
	out := make([]NamedMigrator, 0, len(modules))
	for _, m := range modules {
		out = append(out, NamedMigrator{Name: m.Name, Migrator: migrate.NewMigrator(db, m.Migrations)})
	}
	return out
}

// NamedMigrator pairs a migrator with its module name.
type NamedMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// MigrateAll creates the migration tables and applies every module's
// pending migrations.
func MigrateAll(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)
	if err := migrators[0].Migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, m := range migrators {
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", slog.String("module", m.Name))
			continue
		}
		logger.InfoContext(ctx, "Migrated module", slog.String("module", m.Name), slog.String("group", group.String()))
	}
	return nil
}

// MigrateRiver applies River's schema migrations on dsn. With down set it
// rolls back a single step instead.
func MigrateRiver(ctx context.Context, dsn string, down bool) ([]int, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}

	direction := rivermigrate.DirectionUp
	opts := &rivermigrate.MigrateOpts{}
	if down {
		direction = rivermigrate.DirectionDown
		opts.MaxSteps = 1
	}

	res, err := migrator.Migrate(ctx, direction, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to run River migrations: %w", err)
	}

	versions := make([]int, 0, len(res.Versions))
	for _, v := range res.Versions {
		versions = append(versions, v.Version)
	}
	return versions, nil
}
