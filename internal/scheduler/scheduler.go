// Package scheduler фоновые задачи сервиса. Все пять забот о времени —
// протухание холдов, автоподтверждение, автозакрытие визитов,
// лист ожидания и напоминания — крутятся на одной абстракции Job
// с общим циклом тикера.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Job периодическая фоновая задача
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsCollector метрики фоновых задач
type MetricsCollector interface {
	ObserveSchedulerTick(job, status string)
}

// Scheduler запускает задачи по тикеру, каждая в своей горутине.
// Ошибка или паника тика логируется и не останавливает задачу:
// следующий тик попробует снова.
type Scheduler struct {
	jobs    []Job
	logger  Logger
	metrics MetricsCollector

	wg sync.WaitGroup
}

// New создает планировщик с набором задач
func New(jobs []Job, logger Logger, metrics MetricsCollector) *Scheduler {
	return &Scheduler{
		jobs:    jobs,
		logger:  logger,
		metrics: metrics,
	}
}

// Start запускает все задачи. Каждая задача выполняет первый тик сразу,
// не дожидаясь интервала. Остановка — через отмену ctx; Wait дождется
// завершения всех горутин.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}
	s.logger.Info("scheduler: started %d jobs", len(s.jobs))
}

// Wait блокируется до завершения всех задач после отмены контекста
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.tick(ctx, job)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler: job %s stopped", job.Name)
			return
		case <-ticker.C:
			s.tick(ctx, job)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, job Job) {
	// паника в задаче считается ошибочным тиком, а не поводом
	// уронить процесс
	defer func() {
		if r := recover(); r != nil {
			s.metrics.ObserveSchedulerTick(job.Name, "error")
			s.logger.Error("scheduler: job %s panicked: %v", job.Name, r)
		}
	}()

	if err := job.Run(ctx); err != nil {
		s.metrics.ObserveSchedulerTick(job.Name, "error")
		s.logger.Error("scheduler: job %s failed: %v", job.Name, err)
		return
	}
	s.metrics.ObserveSchedulerTick(job.Name, "ok")
}
