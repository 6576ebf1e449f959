package refresh

import (
	"context"
	"time"

	"countrypulse/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = time.Hour

type Runner interface {
	Run(ctx context.Context) (domain.RefreshResult, error)
}

// Scheduler triggers periodic refresh runs. Singleton mode: a run that
// outlasts the interval is not overlapped by the next trigger.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	sched    gocron.Scheduler
}

func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Scheduler{runner: runner, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		result, runErr := s.runner.Run(jobCtx)
		if runErr != nil {
			logrus.Errorf("Scheduled refresh failed: %v", runErr)
			return
		}
		logrus.Infof("Scheduled refresh done, %d countries total", result.Total)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
