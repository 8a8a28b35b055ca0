package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/faucetlab/faucet-claimer/internal/claimcore"
)

// RunFunc executes one full claim pass and reports its statistics.
type RunFunc func(ctx context.Context) (claimcore.RunStats, error)

// Scheduler invokes a claim pass on a fixed recurring interval, persisting
// State after every run so a restart neither replays nor skips a run. It is
// the sole writer of the state file.
type Scheduler struct {
	statePath string
	interval  time.Duration
	run       RunFunc
	log       *logrus.Logger

	now      func() time.Time
	forceRun bool
}

func New(statePath string, interval time.Duration, run RunFunc, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		statePath: statePath,
		interval:  interval,
		run:       run,
		log:       log,
		now:       time.Now,
	}
}

// ForceNextRun makes the next Waiting check fire immediately regardless of
// the persisted next-run time. Set before Run.
func (s *Scheduler) ForceNextRun() { s.forceRun = true }

// Due reports whether a run should start at the given time.
func Due(st State, now time.Time) bool {
	if st.NextRunTime == nil {
		return true
	}
	return !now.Before(*st.NextRunTime)
}

// Step executes one run and returns the advanced state. The next-run time
// is anchored to the run's start, not its end, so the cadence stays exact
// regardless of how long the pass itself took.
func (s *Scheduler) Step(ctx context.Context, st State) State {
	st.RunCount++
	last := s.now()
	st.LastRunTime = &last
	st.ScheduleIntervalHours = int(s.interval / time.Hour)

	s.log.Infof("starting run #%d", st.RunCount)
	stats, err := s.run(ctx)

	next := last.Add(s.interval)
	st.NextRunTime = &next
	st.LastRunSuccess = err == nil

	if err != nil {
		s.log.Errorf("run #%d failed: %v", st.RunCount, err)
	} else {
		s.log.Infof("run #%d completed successfully", st.RunCount)
	}
	s.log.Infof("run #%d stats - processed: %d, succeeded: %d, failed: %d, elapsed: %s",
		st.RunCount, stats.Processed, stats.Succeeded, stats.Failed, stats.Elapsed.Round(time.Millisecond))
	s.log.Infof("next run scheduled for: %s", next.Format(time.RFC3339))
	return st
}

// Run is the scheduler loop: load state, then alternate waiting and
// running until ctx is cancelled. A failed pass still schedules and
// persists the next run; cancellation mid-pass persists the partial
// result before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Infof("scheduler starting - interval: %s, state file: %s", s.interval, s.statePath)

	st, err := LoadState(s.statePath)
	if err != nil {
		s.log.Errorf("failed to load scheduler state, starting fresh: %v", err)
		st = State{}
	}
	if st.RunCount > 0 {
		s.log.Infof("loaded previous state - run count: %d", st.RunCount)
		if st.LastRunTime != nil {
			s.log.Infof("last run: %s", st.LastRunTime.Format(time.RFC3339))
		}
		if st.NextRunTime != nil {
			s.log.Infof("next scheduled run: %s", st.NextRunTime.Format(time.RFC3339))
		}
	}

	for ctx.Err() == nil {
		if s.forceRun || Due(st, s.now()) {
			s.forceRun = false
			st = s.Step(ctx, st)
			if err := SaveState(s.statePath, st); err != nil {
				s.log.Errorf("failed to save scheduler state: %v", err)
			}
			continue
		}

		wait := st.NextRunTime.Sub(s.now())
		s.log.Infof("waiting %.1f hours until next run", wait.Hours())
		if err := s.waitWithProgress(ctx, wait); err != nil {
			break
		}
	}

	s.log.Info("scheduler shutting down")
	return nil
}

// waitWithProgress sleeps in bounded increments, reporting the remaining
// time periodically, and returns early when ctx is cancelled.
func (s *Scheduler) waitWithProgress(ctx context.Context, total time.Duration) error {
	if total <= 0 {
		return nil
	}
	step := total / 10
	if step > 5*time.Minute {
		step = 5 * time.Minute
	}
	if step < time.Second {
		step = time.Second
	}

	deadline := s.now().Add(total)
	timer := time.NewTimer(step)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		remaining := deadline.Sub(s.now())
		if remaining <= 0 {
			return nil
		}
		if remaining >= time.Hour {
			s.log.Infof("next run in %.1f hours...", remaining.Hours())
		} else {
			s.log.Infof("next run in %.1f minutes...", remaining.Minutes())
		}
		if remaining < step {
			timer.Reset(remaining)
		} else {
			timer.Reset(step)
		}
	}
}
