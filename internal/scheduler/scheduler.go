// Package scheduler runs periodic booking maintenance.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Completer marks confirmed bookings that ended before now as completed.
type Completer interface {
	CompleteFinished(ctx context.Context, now time.Time) (int, error)
}

// Scheduler completes finished bookings on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	completer Completer
	timeout   time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func New(completer Completer, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		completer: completer,
		timeout:   30 * time.Second,
		log:       log.Named("scheduler"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the completion job with spec (standard five-field cron or a
// descriptor such as "@hourly") and starts the cron runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runLogged); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Info("booking completion job scheduled", zap.String("spec", spec))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunOnce performs a single completion pass.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.completer.CompleteFinished(ctx, s.now())
}

func (s *Scheduler) runLogged() {
	n, err := s.RunOnce(context.Background())
	if err != nil {
		s.log.Error("booking completion failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("bookings completed", zap.Int("count", n))
	}
}
