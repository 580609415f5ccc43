// Package scheduler runs the periodic background tasks: sweeping abandoned
// study sessions and recording daily streak snapshots.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/kberg/flashdeck/internal/logger"
)

// SessionSweeper removes idle in-memory sessions and reports how many went.
type SessionSweeper interface {
	Sweep() int
}

// StreakRecorder persists a streak snapshot for every user with history.
type StreakRecorder interface {
	SnapshotStreaks(ctx context.Context) error
}

// Scheduler manages the recurring jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   SessionSweeper
	recorder  StreakRecorder
	log       *logger.Logger

	sweepEvery time.Duration
	snapshotAt string
}

// New creates a scheduler. snapshotAt is a local "HH:MM" time of day.
func New(sweeper SessionSweeper, recorder StreakRecorder, sweepEvery time.Duration, snapshotAt string) *Scheduler {
	if sweepEvery <= 0 {
		sweepEvery = 5 * time.Minute
	}
	if snapshotAt == "" {
		snapshotAt = "03:00"
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.Local),
		sweeper:    sweeper,
		recorder:   recorder,
		log:        logger.Default().WithPrefix("scheduler"),
		sweepEvery: sweepEvery,
		snapshotAt: snapshotAt,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(s.sweepEvery).Do(s.sweepSessions); err != nil {
		s.log.Error("failed to schedule session sweep: %v", err)
	}
	if _, err := s.scheduler.Every(1).Day().At(s.snapshotAt).Do(s.snapshotStreaks); err != nil {
		s.log.Error("failed to schedule streak snapshot: %v", err)
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler started: sweep every %v, streak snapshot at %s", s.sweepEvery, s.snapshotAt)
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) sweepSessions() {
	if removed := s.sweeper.Sweep(); removed > 0 {
		s.log.Info("swept %d abandoned study sessions", removed)
	}
}

func (s *Scheduler) snapshotStreaks() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctx = logger.NewContext(ctx, s.log)
	if err := s.recorder.SnapshotStreaks(ctx); err != nil {
		s.log.Error("streak snapshot run failed: %v", err)
	}
}
