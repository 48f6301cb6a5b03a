package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/funfirstplay/matchup/config"
	"github.com/funfirstplay/matchup/db/bundb"
	_ "github.com/joho/godotenv/autoload"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "migrate",
		Usage: "matchup database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newDBCommand(),
			newRiverCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres.dsn (DATABASE_URL) is required")
	}
	return cfg, nil
}

// withDB opens the database for the duration of fn.
func withDB(c *cli.Context, fn func(ctx context.Context, db *bun.DB) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := bundb.Connect(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(c.Context, db)
}

func newDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "module table migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, db *bun.DB) error {
						migrators := bundb.Migrators(db)
						fmt.Println("Initializing migration tables")
						return migrators[0].Migrator.Init(ctx)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "apply pending migrations in dependency order",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, db *bun.DB) error {
						for _, m := range bundb.Migrators(db) {
							fmt.Printf("Running migrations for module: %s\n", m.Name)
							group, err := m.Migrator.Migrate(ctx)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.Name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.Name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.Name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group of every module, dependents first",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, db *bun.DB) error {
						migrators := bundb.Migrators(db)
						for i := len(migrators) - 1; i >= 0; i-- {
							m := migrators[i]
							fmt.Printf("Rolling back migrations for module: %s\n", m.Name)
							group, err := m.Migrator.Rollback(ctx)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.Name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.Name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.Name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name words...>",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, db *bun.DB) error {
						moduleName := c.Args().First()
						for _, m := range bundb.Migrators(db) {
							if m.Name != moduleName {
								continue
							}
							mf, err := m.Migrator.CreateGoMigration(ctx, strings.Join(c.Args().Tail(), "_"))
							if err != nil {
								return err
							}
							fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
							return nil
						}
						return fmt.Errorf("invalid module name: %s", moduleName)
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, db *bun.DB) error {
						for _, m := range bundb.Migrators(db) {
							ms, err := m.Migrator.MigrationsWithStatus(ctx)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.Name, err)
							}
							fmt.Printf("Migrations for module: %s\n", m.Name)
							fmt.Printf("  %s\n", ms)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}

func newRiverCommand() *cli.Command {
	run := func(down bool) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			versions, err := bundb.MigrateRiver(c.Context, cfg.Postgres.DSN, down)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Println("River schema already up to date")
				return nil
			}
			fmt.Printf("River migrations applied: %v\n", versions)
			return nil
		}
	}

	return &cli.Command{
		Name:  "river",
		Usage: "job queue schema migrations",
		Subcommands: []*cli.Command{
			{Name: "migrate", Usage: "apply River migrations", Action: run(false)},
			{Name: "rollback", Usage: "roll back one River migration", Action: run(true)},
		},
	}
}
