package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	scheduler gocron.Scheduler
	log       logging.Logger
	// ctx is the parent of every job run; cancelled on Shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(l logging.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		log:       l.With("module", "jobs"),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Register schedules job at its interval. A run still in progress when the
// next one is due pushes that one back instead of overlapping.
func (s *Scheduler) Register(job Job) error {
	if job.every <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.name)
	}
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(job.every),
		gocron.NewTask(func() { s.run(job) }),
		gocron.WithName(job.name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (s *Scheduler) run(job Job) {
	ctx := s.ctx
	if job.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.timeout)
		defer cancel()
	}

	started := time.Now()
	if err := job.run(ctx); err != nil {
		s.log.Warn(ctx, "job failed", "job", job.name, "elapsed", time.Since(started), "error", err)
		return
	}
	s.log.Debug(ctx, "job finished", "job", job.name, "elapsed", time.Since(started))
}

func (s *Scheduler) Start() {
	s.log.Info(s.ctx, "job scheduler starting", "jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

func (s *Scheduler) Shutdown() error {
	s.log.Info(s.ctx, "job scheduler shutting down")
	s.cancel()
	return s.scheduler.Shutdown()
}
