package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mobiliario/internal/batch"
	"mobiliario/internal/dto"
	apperrors "mobiliario/internal/errors"
)

const jobAll = "all"

type BatchRunner interface {
	JobNames() []string
	RunAll(ctx context.Context, scope batch.Scope) []batch.JobResult
	Run(ctx context.Context, name string, scope batch.Scope) (batch.Report, error)
}

type RunBatchController struct {
	runner BatchRunner
	logger *zap.Logger
}

func NewRunBatchController(runner BatchRunner, logger *zap.Logger) *RunBatchController {
	return &RunBatchController{
		runner: runner,
		logger: logger,
	}
}

// RunBatch triggers one job (or all of them) synchronously and reports the
// per-job counters back to the caller.
func (c *RunBatchController) RunBatch(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	jobName := chi.URLParam(r, "job")
	if err := c.validateJobName(jobName); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	scope, err := c.parseScope(r)
	if err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	logger.Info("batch trigger received", zap.String("job", jobName))

	var results []batch.JobResult
	if jobName == jobAll {
		results = c.runner.RunAll(r.Context(), scope)
	} else {
		report, err := c.runner.Run(r.Context(), jobName, scope)
		results = []batch.JobResult{{Job: jobName, Report: report, Err: err}}
	}

	c.writeRunBatchResponse(w, traceID, jobName, results)
}

func (c *RunBatchController) validateJobName(jobName string) error {
	if jobName == jobAll {
		return nil
	}
	for _, name := range c.runner.JobNames() {
		if name == jobName {
			return nil
		}
	}
	return apperrors.NewValidationError("unknown job", apperrors.ValidationDetail{
		Field:   "job",
		Message: "job must be one of: all, volume, price, bonification, stock",
	})
}

func (c *RunBatchController) parseScope(r *http.Request) (batch.Scope, error) {
	budgetIDStr := r.URL.Query().Get("budgetId")
	if budgetIDStr == "" {
		return batch.Scope{}, nil
	}

	budgetID, err := strconv.ParseUint(budgetIDStr, 10, 64)
	if err != nil || budgetID == 0 {
		return batch.Scope{}, apperrors.NewValidationError("invalid budgetId", apperrors.ValidationDetail{
			Field:   "budgetId",
			Message: "budgetId must be a positive integer",
		})
	}

	id := uint(budgetID)
	return batch.Scope{BudgetID: &id}, nil
}

func (c *RunBatchController) writeRunBatchResponse(w http.ResponseWriter, traceID, jobName string, results []batch.JobResult) {
	reports := make([]dto.JobReportDTO, len(results))
	failed := false
	for i, result := range results {
		reports[i] = dto.JobReportDTO{
			Job:       result.Job,
			Processed: result.Report.Processed,
			Updated:   result.Report.Updated,
			Failed:    result.Report.Failed,
		}
		if result.Err != nil {
			reports[i].Error = result.Err.Error()
			failed = true
		}
	}

	response := dto.RunBatchResponse{
		TraceID:   traceID,
		Job:       jobName,
		Results:   reports,
		Timestamp: time.Now().UTC(),
	}

	status := http.StatusOK
	if failed {
		status = http.StatusInternalServerError
	}

	c.writeJSON(w, status, response)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *RunBatchController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *RunBatchController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
