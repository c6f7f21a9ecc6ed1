package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/pkg/redistools"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentcache"
	"github.com/redis/go-redis/v9"
)

// ContentCache keeps the active list of one collection as a single JSON value.
type ContentCache[T any] struct {
	rdb     *redis.Client
	key     string
	expTime time.Duration
}

func Connect(ctx context.Context, cfg config.RedisCache) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{ //nolint:exhaustruct
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := redistools.Connect(ctx, rdb); err != nil {
		return nil, fmt.Errorf("connect error: %w", err)
	}

	return rdb, nil
}

func New[T any](rdb *redis.Client, c models.Collection, expTime time.Duration) ContentCache[T] {
	return ContentCache[T]{
		rdb:     rdb,
		key:     fmt.Sprintf("content:%s:active", c),
		expTime: expTime,
	}
}

func (cc ContentCache[T]) GetActive(ctx context.Context) ([]T, error) {
	data, err := cc.rdb.Get(ctx, cc.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, contentcache.ErrMiss
	} else if err != nil {
		return nil, fmt.Errorf("get error: %w", err)
	}

	var records []T

	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return records, nil
}

func (cc ContentCache[T]) SetActive(ctx context.Context, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if _, err := cc.rdb.Set(ctx, cc.key, data, cc.expTime).Result(); err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

func (cc ContentCache[T]) Invalidate(ctx context.Context) error {
	if _, err := cc.rdb.Del(ctx, cc.key).Result(); err != nil {
		return fmt.Errorf("del error: %w", err)
	}

	return nil
}
