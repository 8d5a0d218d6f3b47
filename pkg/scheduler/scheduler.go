// Package scheduler triggers periodic cleanups. It is deliberately an
// external caller of the pipeline: a fired job hands the folder and rules
// to a callback and never invokes the engine itself.
//
// Each Scheduler instance owns its own job table and lifecycle. There is
// no process-wide registration state; jobs are identified by opaque
// handles returned at registration time and cancelled by handle.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/scour/pkg/config"
	"github.com/arthur-debert/scour/pkg/errors"
	"github.com/arthur-debert/scour/pkg/logging"
)

// Kind distinguishes recurrence schedules.
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
)

// CleanupRequest is what a fired job delivers to the callback.
type CleanupRequest struct {
	JobID  string
	Kind   Kind
	Folder string
	Rules  config.RuleConfig
	Time   time.Time
}

// Job describes one registered schedule.
type Job struct {
	ID     string
	Kind   Kind
	Day    time.Weekday // meaningful for weekly jobs only
	At     string       // wall-clock "15:04"
	Folder string
}

type jobRecord struct {
	job   Job
	entry cron.EntryID
}

// Scheduler owns a set of periodic cleanup jobs.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	jobs    map[string]jobRecord
	fire    func(CleanupRequest)
	logger  zerolog.Logger
	running bool
}

// New creates a stopped scheduler that delivers fired jobs to fire.
func New(fire func(CleanupRequest)) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		jobs:   make(map[string]jobRecord),
		fire:   fire,
		logger: logging.GetLogger("scheduler"),
	}
}

// ScheduleDaily registers a cleanup of folder every day at the given
// wall-clock time ("15:04"). Returns the job handle.
func (s *Scheduler) ScheduleDaily(at, folder string, rules config.RuleConfig) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrJobInvalid, "invalid time %q", at)
	}
	spec := fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
	return s.register(Job{Kind: KindDaily, At: at, Folder: folder}, spec, rules)
}

// ScheduleWeekly registers a cleanup of folder every week on day at the
// given wall-clock time. Returns the job handle.
func (s *Scheduler) ScheduleWeekly(day time.Weekday, at, folder string, rules config.RuleConfig) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrJobInvalid, "invalid time %q", at)
	}
	spec := fmt.Sprintf("%d %d * * %d", t.Minute(), t.Hour(), int(day))
	return s.register(Job{Kind: KindWeekly, Day: day, At: at, Folder: folder}, spec, rules)
}

func (s *Scheduler) register(job Job, spec string, rules config.RuleConfig) (string, error) {
	job.ID = uuid.NewString()

	entry, err := s.cron.AddFunc(spec, func() {
		s.logger.Info().
			Str("job", job.ID).
			Str("folder", job.Folder).
			Str("kind", string(job.Kind)).
			Msg("Scheduled cleanup triggered")
		s.fire(CleanupRequest{
			JobID:  job.ID,
			Kind:   job.Kind,
			Folder: job.Folder,
			Rules:  rules,
			Time:   time.Now(),
		})
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrJobInvalid, "failed to register %s job", job.Kind)
	}

	s.mu.Lock()
	s.jobs[job.ID] = jobRecord{job: job, entry: entry}
	s.mu.Unlock()

	s.logger.Debug().Str("job", job.ID).Str("spec", spec).Msg("Job registered")
	return job.ID, nil
}

// Cancel removes the job with the given handle.
func (s *Scheduler) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[id]
	if !ok {
		return errors.Newf(errors.ErrJobNotFound, "no job with handle %s", id)
	}
	s.cron.Remove(rec.entry)
	delete(s.jobs, id)
	return nil
}

// Jobs returns a snapshot of all registered jobs.
func (s *Scheduler) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Job, 0, len(s.jobs))
	for _, rec := range s.jobs {
		out = append(out, rec.job)
	}
	return out
}

// Start begins running jobs in the background. Idempotent.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.logger.Info().Msg("Scheduler started")
}

// Stop halts job dispatch and clears the job table. Jobs already running
// are not interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()

	for id, rec := range s.jobs {
		s.cron.Remove(rec.entry)
		delete(s.jobs, id)
	}
	s.running = false
	s.logger.Info().Msg("Scheduler stopped")
}
