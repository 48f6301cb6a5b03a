package directorycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	directorydomain "github.com/funfirstplay/matchup/app/modules/directory/domain"
	"github.com/redis/go-redis/v9"
)

const sportKeyPrefix = "matchup:sport:"

// Connect creates a Redis client and verifies it with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

// SportCache stores sport records as JSON with a TTL.
type SportCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSportCache creates a Redis backed sport cache.
func NewSportCache(client redis.Cmdable, ttl time.Duration) *SportCache {
	return &SportCache{client: client, ttl: ttl}
}

func sportKey(id int64) string {
	return sportKeyPrefix + strconv.FormatInt(id, 10)
}

// Get returns the cached sport, or nil on a miss.
func (c *SportCache) Get(ctx context.Context, sportID int64) (*directorydomain.Sport, error) {
	raw, err := c.client.Get(ctx, sportKey(sportID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sport from cache: %w", err)
	}

	var sport directorydomain.Sport
	if err := json.Unmarshal(raw, &sport); err != nil {
		return nil, fmt.Errorf("failed to decode cached sport: %w", err)
	}
	return &sport, nil
}

// Set stores the sport under its id.
func (c *SportCache) Set(ctx context.Context, sport *directorydomain.Sport) error {
	data, err := json.Marshal(sport)
	if err != nil {
		return fmt.Errorf("failed to encode sport: %w", err)
	}
	if err := c.client.Set(ctx, sportKey(sport.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write sport to cache: %w", err)
	}
	return nil
}

// NoopSportCache never hits. It is used when Redis is not configured.
type NoopSportCache struct{}

func (NoopSportCache) Get(context.Context, int64) (*directorydomain.Sport, error) { return nil, nil }
func (NoopSportCache) Set(context.Context, *directorydomain.Sport) error          { return nil }
