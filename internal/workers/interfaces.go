// Package workers runs the background housekeeping of the server: the OTP
// sweeper and the audit retention job. Neither is needed for correctness,
// they only reclaim storage.
package workers

import "context"

// Worker blocks in Run until ctx is cancelled.
type Worker interface {
	Name() string
	Run(ctx context.Context)
}
