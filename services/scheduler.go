// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StartArchiveScheduler runs the archive job every interval until ctx is done.
func (s *ArchiveService) StartArchiveScheduler(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			jobCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			if _, err := s.Run(jobCtx); err != nil {
				zap.L().Error("[Scheduler] archive failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			zap.L().Warn("[Scheduler] shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("✅ Archive scheduler running", zap.Duration("interval", interval))
	return sched, nil
}
