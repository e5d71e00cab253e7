package ratelimit

import "context"

// LoginLimiter counts failed logins per email and per IP.
type LoginLimiter interface {
	// Check returns ErrRateLimited when either counter reached the limit.
	Check(ctx context.Context, email, ip string) error
	// RegisterFailure records one failed login.
	RegisterFailure(ctx context.Context, email, ip string) error
	// Reset clears the email counter after a successful login. The IP
	// counter keeps running: one valid account must not reopen the window
	// for guesses at other emails from the same address.
	Reset(ctx context.Context, email string) error
}
