// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/taibuivan/spellbook/internal/platform/constants"
)

// # Redis Cache

// redisCache implements [Cache] on top of go-redis.
//
// Reads go through a circuit breaker: once Redis keeps failing the cache
// answers "miss" immediately instead of waiting on dial timeouts.
type redisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	logger  *slog.Logger
}

// NewRedisCache builds the spell detail cache.
func NewRedisCache(client *redis.Client, logger *slog.Logger) Cache {
	settings := gobreaker.Settings{
		Name:        "spell-cache",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("spell_cache_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &redisCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		ttl:     constants.SpellCacheTTL,
		logger:  logger,
	}
}

func cacheKey(index string) string {
	return constants.RedisPrefixSpell + index
}

// Get returns the cached spell, or false on miss or any failure.
func (cache *redisCache) Get(ctx context.Context, index string) (*Spell, bool) {
	payload, err := cache.breaker.Execute(func() ([]byte, error) {
		return cache.client.Get(ctx, cacheKey(index)).Bytes()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			cache.logger.Debug("spell_cache_miss", slog.String("index", index))
		} else {
			cache.logger.Debug("spell_cache_read_failed", slog.String("index", index), slog.Any("error", err))
		}
		return nil, false
	}

	var spell Spell
	if err := json.Unmarshal(payload, &spell); err != nil {
		cache.logger.Warn("spell_cache_entry_corrupt", slog.String("index", index), slog.Any("error", err))
		return nil, false
	}

	return &spell, true
}

// Set stores the spell under its index. Failures are logged and ignored.
func (cache *redisCache) Set(ctx context.Context, spell *Spell) {
	payload, err := json.Marshal(spell)
	if err != nil {
		return
	}

	if err := cache.client.Set(ctx, cacheKey(spell.Index), payload, cache.ttl).Err(); err != nil {
		cache.logger.Debug("spell_cache_write_failed", slog.String("index", spell.Index), slog.Any("error", err))
	}
}

// Invalidate drops the cached entry for index.
func (cache *redisCache) Invalidate(ctx context.Context, index string) {
	if err := cache.client.Del(ctx, cacheKey(index)).Err(); err != nil {
		cache.logger.Warn("spell_cache_invalidation_failed", slog.String("index", index), slog.Any("error", err))
	}
}
