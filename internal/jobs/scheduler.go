// Package jobs runs the periodic maintenance tasks of the API process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/logging"
)

// DefaultSweepSpec runs the session sweep at the top of every hour.
const DefaultSweepSpec = "0 0 * * * *"

// SessionSweeper drops sessions whose admin user no longer exists.
type SessionSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	log := logging.OrNop(logger).Named("jobs")
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log,
	}
}

// AddSessionSweep schedules sw on a six-field cron spec (seconds first).
func (s *Scheduler) AddSessionSweep(spec string, sw SessionSweeper, timeout time.Duration) error {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		RunSessionSweep(ctx, sw, s.log)
	})
	if err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", spec, err)
	}
	s.log.Info("session sweep scheduled", zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("cron scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunSessionSweep performs one sweep and logs the outcome.
func RunSessionSweep(ctx context.Context, sw SessionSweeper, log *zap.Logger) (int, error) {
	log = logging.OrNop(log)
	start := time.Now()
	removed, err := sw.Sweep(ctx)
	if err != nil {
		log.Error("session sweep failed", zap.Int("removed", removed), zap.Error(err))
		return removed, err
	}
	log.Info("session sweep completed", zap.Int("removed", removed), zap.Duration("took", time.Since(start)))
	return removed, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
