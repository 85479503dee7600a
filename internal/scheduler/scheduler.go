package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Job именованный прогон. Пустой Spec значит запуск только через HTTP.
type Job struct {
	Name string
	Spec string
	Run  JobFunc
}

// Scheduler хранит прогоны обслуживания и запускает их по расписанию или по имени
type Scheduler struct {
	jobs    map[string]Job
	cron    *cron.Cron
	timeout time.Duration
	now     func() time.Time
	logger  Logger
}

// New создает планировщик; timeout ограничивает один прогон по расписанию
func New(timeout time.Duration, logger Logger, jobs ...Job) *Scheduler {
	s := &Scheduler{
		jobs:    make(map[string]Job, len(jobs)),
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
	for _, j := range jobs {
		s.jobs[j.Name] = j
	}

	// Медленный прогон не должен накладываться на следующий
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger{logger}),
		cron.SkipIfStillRunning(cronLogger{logger}),
	))
	return s
}

// Names зарегистрированные прогоны в алфавитном порядке
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run выполняет прогон по имени
func (s *Scheduler) Run(ctx context.Context, name string) (int, error) {
	job, ok := s.jobs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}

	started := s.now()
	processed, err := job.Run(ctx, started)
	if err != nil {
		s.logger.Error("Scheduler: job %s failed after %s: %v", name, time.Since(started), err)
		return processed, err
	}

	s.logger.Info("Scheduler: job %s processed %d", name, processed)
	return processed, nil
}

// Start регистрирует прогоны с расписанием и запускает cron
func (s *Scheduler) Start() error {
	for _, name := range s.Names() {
		job := s.jobs[name]
		if strings.TrimSpace(job.Spec) == "" {
			continue
		}

		if _, err := s.cron.AddFunc(job.Spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			_, _ = s.Run(ctx, job.Name)
		}); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalidSchedule, name, job.Spec, err)
		}
		s.logger.Info("Scheduler: job %s scheduled at %q", name, job.Spec)
	}

	s.cron.Start()
	return nil
}

// Stop останавливает cron и ждет текущие прогоны не дольше ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, jobs still running")
	}
}

// cronLogger адаптер под cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
