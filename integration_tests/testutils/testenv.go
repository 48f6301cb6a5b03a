package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/funfirstplay/matchup/app/observability"
	"github.com/funfirstplay/matchup/config"
	"github.com/funfirstplay/matchup/db/bundb"
	"github.com/funfirstplay/matchup/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/uptrace/bun"
)

// appTables lists the tables truncated between tests.
var appTables = []string{"notifications", "player_responses", "match_players", "matches", "skill_levels", "sports", "users"}

// TestEnvironment holds the containers and connections an integration test needs.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	DB            *bun.DB
	DSN           string
	NatsURL       string
	Config        *config.Config
	Observability observability.Observability
	Logger        *slog.Logger

	containers []testcontainers.Container
}

// NewTestEnvironment starts Postgres and NATS, applies every migration and
// registers cleanup on t. It skips under -short.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}
	t.Cleanup(env.Close)

	if err := env.setup(ctx); err != nil {
		t.Fatalf("failed to set up test environment: %v", err)
	}
	return env
}

func (env *TestEnvironment) setup(ctx context.Context) error {
	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return err
	}
	env.containers = append(env.containers, pgContainer)
	env.DSN = dsn

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		return err
	}
	env.containers = append(env.containers, natsContainer)
	env.NatsURL = natsURL

	cfg := config.Default()
	cfg.Postgres.DSN = dsn
	cfg.NATS.URL = natsURL
	cfg.JWT.Secret = "integration-secret-at-least-32-chars"
	cfg.Scheduler.Enabled = false
	cfg.Observability.MetricsEnabled = false
	cfg.Observability.Environment = "test"
	env.Config = &cfg

	env.Observability = observability.Init(observability.Config{
		ServiceName: "matchup-test",
		Environment: "test",
		LogLevel:    "warn",
		Output:      io.Discard,
	})
	env.Logger = env.Observability.Provider.Logger

	db, err := bundb.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	env.DB = db

	if _, err := bundb.MigrateRiver(ctx, dsn, false); err != nil {
		return err
	}
	if err := bundb.MigrateAll(ctx, db, env.Logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Reset truncates every application table.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(appTables, ", "))
	if _, err := env.DB.ExecContext(env.Ctx, query); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Close releases connections and terminates the containers.
func (env *TestEnvironment) Close() {
	if env.DB != nil {
		_ = env.DB.Close()
	}
	ctx := context.Background()
	for i := len(env.containers) - 1; i >= 0; i-- {
		_ = env.containers[i].Terminate(ctx)
	}
	if env.CancelContext != nil {
		env.CancelContext()
	}
}
