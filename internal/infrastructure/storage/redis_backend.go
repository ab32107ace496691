package storage

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

const (
	defaultRedisPrefix = "roguelike:saves:"
	redisIndexKey      = "__index"
)

// RedisConfig - параметры бэкенда на Redis.
type RedisConfig struct {
	Client redis.UniversalClient
	// Prefix - пространство ключей, по умолчанию "roguelike:saves:".
	Prefix string
}

func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// RedisBackend хранит каждый блоб строкой; время изменения лежит в
// отсортированном множестве-индексе. Запись и удаление идут в MULTI.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisBackend(cfg *RedisConfig) (*RedisBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisBackend{client: cfg.Client, prefix: prefix}, nil
}

func (b *RedisBackend) index() string { return b.prefix + redisIndexKey }

func (b *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("%s not found", key)
		}
		return nil, ioFailure(err, "redis get "+key)
	}
	return data, nil
}

func (b *RedisBackend) Write(ctx context.Context, key string, data []byte) error {
	now := time.Now()
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.prefix+key, data, 0)
		pipe.ZAdd(ctx, b.index(), redis.Z{Score: float64(now.UnixMilli()), Member: key})
		return nil
	})
	if err != nil {
		return ioFailure(err, "redis set "+key)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.prefix+key)
		pipe.ZRem(ctx, b.index(), key)
		return nil
	})
	if err != nil {
		return ioFailure(err, "redis del "+key)
	}
	return nil
}

func (b *RedisBackend) List(ctx context.Context, prefix string) ([]Entry, error) {
	members, err := b.client.ZRangeWithScores(ctx, b.index(), 0, -1).Result()
	if err != nil {
		return nil, ioFailure(err, "redis list")
	}

	var keys []string
	var stamps []time.Time
	for _, z := range members {
		key, ok := z.Member.(string)
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
		stamps = append(stamps, time.UnixMilli(int64(z.Score)))
	}
	if len(keys) == 0 {
		return nil, nil
	}

	// Размеры одним проходом
	pipe := b.client.Pipeline()
	lens := make([]*redis.IntCmd, len(keys))
	for i, key := range keys {
		lens[i] = pipe.StrLen(ctx, b.prefix+key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, ioFailure(err, "redis strlen")
	}

	out := make([]Entry, 0, len(keys))
	for i, key := range keys {
		out = append(out, Entry{Key: key, Size: lens[i].Val(), Modified: stamps[i]})
	}
	return out, nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
