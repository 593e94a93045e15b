package batch

import (
	"context"

	"go.uber.org/zap"

	"mobiliario/internal/domain"
)

// BonificationJob recomputes the per-line-item clientBonification flag
// against the budget's event date. Budgets without an event date are left
// alone, since there is no date to price against.
type BonificationJob struct {
	budgets       BudgetSource
	writer        BudgetWriter
	bonifications BonificationResolver
	logger        *zap.Logger
}

func NewBonificationJob(budgets BudgetSource, writer BudgetWriter, bonifications BonificationResolver, logger *zap.Logger) *BonificationJob {
	return &BonificationJob{
		budgets:       budgets,
		writer:        writer,
		bonifications: bonifications,
		logger:        logger,
	}
}

func (j *BonificationJob) Name() string {
	return "bonification"
}

func (j *BonificationJob) Run(ctx context.Context, scope Scope) (Report, error) {
	hasDate := true
	filter := scope.Filter()
	filter.HasEventDate = &hasDate

	budgets, err := j.budgets.FindBudgets(ctx, filter)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, budget := range budgets {
		writes, err := j.processBudget(ctx, budget)
		if err != nil {
			report.Failed++
			j.logger.Error("bonification recomputation failed", zap.Uint("budgetId", budget.ID), zap.Error(err))
			continue
		}
		report.Processed++
		report.Updated += writes
	}

	j.logger.Info("bonification job finished",
		zap.Int("processed", report.Processed),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed))

	return report, nil
}

func (j *BonificationJob) processBudget(ctx context.Context, budget domain.Budget) (int, error) {
	items, err := j.budgets.FindLineItems(ctx, budget.ID)
	if err != nil {
		return 0, err
	}

	writes := 0
	for _, item := range items {
		bonification, err := j.bonifications.Resolve(ctx, item.ProductID, *budget.DateEvent)
		if err != nil {
			return writes, err
		}

		if bonification.Bool() != item.ClientBonification {
			if err := j.writer.UpdateLineItemBonification(ctx, item.ID, bonification.Bool()); err != nil {
				return writes, err
			}
			writes++
		}
	}

	return writes, nil
}
