package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const exportJobName = "tenant-export"

// JobScheduler runs the periodic background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	exportSvc services.ExportService
	timeout   time.Duration
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewJobScheduler creates a scheduler that exports every tenant once per interval
func NewJobScheduler(exportSvc services.ExportService, interval time.Duration, logger *zap.Logger) (*JobScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		return nil, errors.New("export interval must be positive")
	}

	scheduler, err := gocron.NewScheduler(
		gocron.WithLogger(gocronLogger{logger.Named("gocron").Sugar()}),
		gocron.WithStopTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		exportSvc: exportSvc,
		timeout:   interval,
		jobs:      make(map[string]gocron.Job),
		logger:    logger.Named("jobs"),
	}

	if err := js.registerJobs(interval); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", zap.Int("jobs", len(js.JobNames())))
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

func (js *JobScheduler) registerJobs(interval time.Duration) error {
	exportJob, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.exportTenants),
		gocron.WithName(exportJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create export job: %w", err)
	}

	js.mu.Lock()
	js.jobs[exportJobName] = exportJob
	js.mu.Unlock()
	return nil
}

// exportTenants writes one workbook per tenant. A run never outlives its interval.
func (js *JobScheduler) exportTenants() error {
	ctx, cancel := context.WithTimeout(context.Background(), js.timeout)
	defer cancel()

	start := time.Now()
	results, err := js.exportSvc.ExportAll(ctx)
	if err != nil {
		js.logger.Error("tenant export finished with errors",
			zap.Int("exported", len(results)),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	js.logger.Info("tenant export completed",
		zap.Int("exported", len(results)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// gocronLogger adapts zap to the gocron logger interface
type gocronLogger struct {
	s *zap.SugaredLogger
}

func (l gocronLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l gocronLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l gocronLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }
