package directory

import (
	"context"
	"log/slog"

	directoryservice "github.com/funfirstplay/matchup/app/modules/directory/application"
	directorycache "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/cache"
	directorydb "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/repositories"
	"github.com/funfirstplay/matchup/config"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

// Module exposes the read-only user, sport and skill level directories.
type Module struct {
	Directory   *directoryservice.Directory
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewDirectoryModule wires the directory repository and the optional sport cache.
func NewDirectoryModule(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *bun.DB) (*Module, error) {
	logger.InfoContext(ctx, "directory.NewDirectoryModule initializing")

	var (
		cache  directoryservice.SportCache = directorycache.NoopSportCache{}
		client *redis.Client
	)
	if cfg.Redis.Addr != "" {
		c, err := directorycache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		client = c
		cache = directorycache.NewSportCache(client, cfg.Redis.SportTTL)
		logger.InfoContext(ctx, "Sport cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	repo := directorydb.NewRepository(db)

	return &Module{
		Directory:   directoryservice.NewDirectory(repo, cache, logger, db),
		redisClient: client,
		logger:      logger,
	}, nil
}

// Close releases the Redis connection, if any.
func (m *Module) Close() error {
	if m.redisClient == nil {
		return nil
	}
	m.logger.Info("Closing sport cache")
	return m.redisClient.Close()
}
