package scheduler

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CronScheduler runs jobs in-process on a robfig/cron engine. A disabled job
// stays registered with the engine but its firings are gated off, so
// re-enabling needs no re-registration.
type CronScheduler struct {
	cron *cron.Cron

	mu   sync.Mutex
	jobs map[string]*cronJob
}

type cronJob struct {
	entryID cron.EntryID
	enabled bool
}

func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron: cron.New(),
		jobs: make(map[string]*cronJob),
	}
}

// Start and Stop hook into the application lifecycle.
func (s *CronScheduler) Start() { s.cron.Start() }
func (s *CronScheduler) Stop()  { <-s.cron.Stop().Done() }

func (s *CronScheduler) CreateJob(name, cronSpec string, task Task, kwargs JobKwargs) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &cronJob{enabled: true}
	entryID, err := s.cron.AddFunc(cronSpec, func() {
		s.mu.Lock()
		enabled := job.enabled
		s.mu.Unlock()
		if !enabled {
			return
		}
		log.Info().Str("job", name).Uint("questionnaire_id", kwargs.QuestionnaireID).Msg("Scheduler job fired")
		task(kwargs)
	})
	if err != nil {
		return "", err
	}
	job.entryID = entryID
	s.jobs[name] = job
	return name, nil
}

func (s *CronScheduler) SetEnabled(handles []string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range handles {
		job, ok := s.jobs[h]
		if !ok {
			log.Warn().Str("job", h).Msg("SetEnabled: unknown job handle")
			continue
		}
		job.enabled = enabled
	}
	return nil
}
