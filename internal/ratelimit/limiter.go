// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "erp-auth:login:"

type redisLoginLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	window      time.Duration

	logger *logger.Logger
}

// NewRedisLoginLimiter creates a [LoginLimiter] backed by client.
func NewRedisLoginLimiter(client redis.UniversalClient, cfg config.Redis, logger *logger.Logger) LoginLimiter {
	logger.Debug().Msg("creating redis login limiter")

	return &redisLoginLimiter{
		redis:       client,
		maxAttempts: cfg.MaxLoginAttempts,
		window:      cfg.LoginWindow,
		logger:      logger,
	}
}

// NewLoginLimiter connects to Redis when cfg.Address is set and returns the
// Redis limiter, otherwise the no-op one. The returned close function
// releases the connection.
func NewLoginLimiter(ctx context.Context, cfg config.Redis, logger *logger.Logger) (LoginLimiter, func() error, error) {
	if cfg.Address == "" {
		logger.Info().Msg("redis address is not set, login throttling disabled")
		return NopLoginLimiter(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	return NewRedisLoginLimiter(client, cfg, logger), client.Close, nil
}

// Check implements [LoginLimiter].
func (l *redisLoginLimiter) Check(ctx context.Context, email, ip string) error {
	for _, key := range l.keys(email, ip) {
		count, err := l.redis.Get(ctx, key).Int64()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
		}
		if count >= int64(l.maxAttempts) {
			return ErrRateLimited
		}
	}
	return nil
}

// RegisterFailure implements [LoginLimiter].
func (l *redisLoginLimiter) RegisterFailure(ctx context.Context, email, ip string) error {
	for _, key := range l.keys(email, ip) {
		if _, err := l.incrementWithTTL(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Reset implements [LoginLimiter].
func (l *redisLoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.redis.Del(ctx, l.keys(email, "")...).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *redisLoginLimiter) incrementWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	if count == 1 {
		if err = l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
		}
	}
	return count, nil
}

func (l *redisLoginLimiter) keys(email, ip string) []string {
	keys := []string{keyPrefix + "email:" + strings.ToLower(strings.TrimSpace(email))}
	if ip != "" {
		keys = append(keys, keyPrefix+"ip:"+ip)
	}
	return keys
}

type nopLoginLimiter struct{}

// NopLoginLimiter never limits.
func NopLoginLimiter() LoginLimiter { return nopLoginLimiter{} }

func (nopLoginLimiter) Check(context.Context, string, string) error           { return nil }
func (nopLoginLimiter) RegisterFailure(context.Context, string, string) error { return nil }
func (nopLoginLimiter) Reset(context.Context, string) error                   { return nil }
