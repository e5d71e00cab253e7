package ratelimit

import "errors"

var (
	ErrRateLimited      = errors.New("too many failed login attempts")
	ErrRedisUnavailable = errors.New("redis unavailable")
)
