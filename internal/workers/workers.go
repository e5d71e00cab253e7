package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/service"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers creates the housekeeping workers. A worker whose interval is
// not positive is disabled.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{logger: logger}
	hk := services.HousekeepingService

	if cfg.OTPSweepInterval > 0 {
		w.workers = append(w.workers, NewPeriodic(service.WorkerOTPSweeper, cfg.OTPSweepInterval, hk.SweepExpiredOTPs, logger))
	}
	if cfg.AuditRetentionInterval > 0 {
		w.workers = append(w.workers, NewPeriodic(service.WorkerAuditRetention, cfg.AuditRetentionInterval, hk.EnforceAuditRetention, logger))
	}

	names := make([]string, 0, len(w.workers))
	for _, worker := range w.workers {
		names = append(names, worker.Name())
	}
	logger.Info().Strs("workers", names).Msg("workers created")
	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned, which happens once ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()

	if w.logger != nil {
		w.logger.Info().Int("count", len(w.workers)).Msg("all workers stopped")
	}
}

// Job is one round of work. It reports how many records it handled.
type Job func(ctx context.Context) (int64, error)

// Periodic runs a Job on a fixed interval. A failed round is logged and the
// next tick retries.
type Periodic struct {
	name     string
	interval time.Duration
	job      Job

	logger *logger.Logger
}

func NewPeriodic(name string, interval time.Duration, job Job, logger *logger.Logger) *Periodic {
	return &Periodic{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.WithComponent(name),
	}
}

func (p *Periodic) Name() string { return p.name }

func (p *Periodic) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("worker started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("worker stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Periodic) tick(ctx context.Context) {
	n, err := p.job(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Err(err).Str("func", "*Periodic.tick").Msg("worker round failed")
		return
	}
	if n > 0 {
		p.logger.Info().Int64("reclaimed", n).Msg("worker round finished")
	}
}
