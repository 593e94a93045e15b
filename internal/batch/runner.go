package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "mobiliario/internal/errors"
)

type Job interface {
	Name() string
	Run(ctx context.Context, scope Scope) (Report, error)
}

type JobResult struct {
	Job    string
	Report Report
	Err    error
}

// Runner executes jobs with a per-job timeout. A failing job never stops
// the ones after it.
type Runner struct {
	jobs       []Job
	jobTimeout time.Duration
	logger     *zap.Logger
}

func NewRunner(jobs []Job, jobTimeout time.Duration, logger *zap.Logger) *Runner {
	return &Runner{
		jobs:       jobs,
		jobTimeout: jobTimeout,
		logger:     logger,
	}
}

func (r *Runner) JobNames() []string {
	names := make([]string, len(r.jobs))
	for i, job := range r.jobs {
		names[i] = job.Name()
	}
	return names
}

// RunAll executes every job in registration order.
func (r *Runner) RunAll(ctx context.Context, scope Scope) []JobResult {
	traceID := uuid.New().String()
	logger := r.logger.With(zap.String("traceId", traceID))
	logger.Info("batch run started", zap.Int("jobCount", len(r.jobs)))

	results := make([]JobResult, 0, len(r.jobs))
	for _, job := range r.jobs {
		results = append(results, r.runOne(ctx, job, scope, logger))
	}

	logger.Info("batch run finished")
	return results
}

// Run executes the named job. Unknown names yield a NotFoundError.
func (r *Runner) Run(ctx context.Context, name string, scope Scope) (Report, error) {
	for _, job := range r.jobs {
		if job.Name() == name {
			result := r.runOne(ctx, job, scope, r.logger)
			return result.Report, result.Err
		}
	}
	return Report{}, apperrors.NewNotFoundError("unknown batch job: " + name)
}

func (r *Runner) runOne(ctx context.Context, job Job, scope Scope, logger *zap.Logger) JobResult {
	jobCtx, cancel := context.WithTimeout(ctx, r.jobTimeout)
	defer cancel()

	started := time.Now()
	report, err := job.Run(jobCtx, scope)
	if err != nil {
		logger.Error("batch job failed", zap.String("job", job.Name()), zap.Error(err))
	} else {
		logger.Info("batch job completed",
			zap.String("job", job.Name()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Int("processed", report.Processed),
			zap.Int("updated", report.Updated),
			zap.Int("failed", report.Failed))
	}

	return JobResult{Job: job.Name(), Report: report, Err: err}
}
