// Package scheduler enqueues periodic maintenance tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/learnhub/internal/logger"
)

// TaskAdder enqueues tasks. *tasks.Client satisfies it.
type TaskAdder interface {
	Enqueue(ctx context.Context, task backlite.Task) error
}

// Job pairs a cron schedule with the task it enqueues.
type Job struct {
	Name     string
	Schedule string // five-field cron format
	Task     backlite.Task
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule reports whether schedule parses as a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// Scheduler runs Jobs on their schedules.
type Scheduler struct {
	adder TaskAdder
	log   *logger.Logger

	cron      *cron.Cron
	mu        sync.RWMutex
	isRunning bool
	entries   map[string]cron.EntryID
}

func New(adder TaskAdder, log *logger.Logger) *Scheduler {
	return &Scheduler{
		adder:   adder,
		log:     log,
		cron:    cron.New(cron.WithParser(parser)),
		entries: make(map[string]cron.EntryID),
	}
}

// Add registers a job. Jobs with an empty schedule are skipped.
func (s *Scheduler) Add(job Job) error {
	if job.Schedule == "" {
		s.log.Info("Scheduled job disabled", "job", job.Name)
		return nil
	}
	if err := ValidateCronSchedule(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.Schedule, job.Name, err)
	}

	id, err := s.cron.AddFunc(job.Schedule, func() { s.RunNow(job) })
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
	}

	s.mu.Lock()
	s.entries[job.Name] = id
	s.mu.Unlock()
	return nil
}

// Start begins the cron loop and stops it when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	s.cron.Start()
	for _, name := range s.jobNames() {
		if next := s.NextRun(name); next != nil {
			s.log.Info("Scheduled job registered", "job", name, "next_run", next.Format(time.RFC3339))
		}
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop stops accepting new runs and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.log.Info("Scheduler stopped")
}

// RunNow enqueues job immediately.
func (s *Scheduler) RunNow(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.adder.Enqueue(ctx, job.Task); err != nil {
		s.log.Error("Failed to enqueue scheduled job", "job", job.Name, "error", err)
		return
	}
	s.log.Debug("Scheduled job enqueued", "job", job.Name)
}

func (s *Scheduler) jobNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names
}

// IsRunning returns whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the named job fires next, or nil if unknown.
func (s *Scheduler) NextRun(name string) *time.Time {
	s.mu.RLock()
	id, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	entry := s.cron.Entry(id)
	if entry.ID == 0 || entry.Next.IsZero() {
		return nil
	}
	t := entry.Next
	return &t
}
