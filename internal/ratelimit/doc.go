// Package ratelimit throttles failed logins.
//
// Failures are counted in Redis per email and per client IP in fixed
// windows: the first failure of a window creates the counter with INCR and
// sets its TTL with EXPIRE. Once a counter reaches the configured maximum,
// [LoginLimiter.Check] reports [ErrRateLimited] until the window expires or
// a successful login resets the counters.
//
// When no Redis address is configured the no-op limiter is used.
package ratelimit
