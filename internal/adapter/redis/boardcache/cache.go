// Package boardcache keeps the per-type board list in Redis so navigation
// trees mounting at the same time share one database read.
package boardcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

const keyPrefix = "catalog:boards:"

// Cache is a read-through cache of board lists keyed by board type.
type Cache struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	log *slog.Logger
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Cache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(rdb, cfg.TTL, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb goredis.UniversalClient, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
		log: logger.With("adapter", "boardcache"),
	}
}

// Get returns the cached list for boardType. ok is false on a miss.
// An undecodable entry is dropped and reported as a miss.
func (c *Cache) Get(ctx context.Context, boardType domain.BoardType) ([]domain.Board, bool, error) {
	raw, err := c.rdb.Get(ctx, key(boardType)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("boardcache get %s: %w", boardType, err)
	}

	var boards []domain.Board
	if err := json.Unmarshal(raw, &boards); err != nil {
		c.log.WarnContext(ctx, "dropping corrupt board cache entry",
			slog.String("type", boardType.String()),
			slog.String("error", err.Error()),
		)
		_ = c.rdb.Del(ctx, key(boardType)).Err()
		return nil, false, nil
	}
	return boards, true, nil
}

// Set stores the list for boardType with the configured TTL.
func (c *Cache) Set(ctx context.Context, boardType domain.BoardType, boards []domain.Board) error {
	if boards == nil {
		boards = []domain.Board{}
	}
	raw, err := json.Marshal(boards)
	if err != nil {
		return fmt.Errorf("boardcache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key(boardType), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("boardcache set %s: %w", boardType, err)
	}
	return nil
}

// Invalidate drops the cached list for boardType.
func (c *Cache) Invalidate(ctx context.Context, boardType domain.BoardType) error {
	if err := c.rdb.Del(ctx, key(boardType)).Err(); err != nil {
		return fmt.Errorf("boardcache invalidate %s: %w", boardType, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

func key(boardType domain.BoardType) string {
	return keyPrefix + string(boardType)
}
