package batch

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mobiliario/internal/domain"
)

// VolumeJob recomputes the aggregated displacement volume of every budget:
// the sum over line items of the resolved product volume times the item
// quantity, rounded to two decimals once at the budget level.
type VolumeJob struct {
	budgets BudgetSource
	writer  BudgetWriter
	volumes VolumeResolver
	logger  *zap.Logger
}

func NewVolumeJob(budgets BudgetSource, writer BudgetWriter, volumes VolumeResolver, logger *zap.Logger) *VolumeJob {
	return &VolumeJob{
		budgets: budgets,
		writer:  writer,
		volumes: volumes,
		logger:  logger,
	}
}

func (j *VolumeJob) Name() string {
	return "volume"
}

func (j *VolumeJob) Run(ctx context.Context, scope Scope) (Report, error) {
	budgets, err := j.budgets.FindBudgets(ctx, scope.Filter())
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, budget := range budgets {
		writes, err := j.processBudget(ctx, budget)
		if err != nil {
			report.Failed++
			j.logger.Error("volume recomputation failed", zap.Uint("budgetId", budget.ID), zap.Error(err))
			continue
		}
		report.Processed++
		report.Updated += writes
	}

	j.logger.Info("volume job finished",
		zap.Int("processed", report.Processed),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed))

	return report, nil
}

func (j *VolumeJob) processBudget(ctx context.Context, budget domain.Budget) (int, error) {
	items, err := j.budgets.FindLineItems(ctx, budget.ID)
	if err != nil {
		return 0, err
	}

	total := decimal.Zero
	for _, item := range items {
		volume, err := j.volumes.Resolve(ctx, item.ProductID)
		if err != nil {
			return 0, err
		}
		total = total.Add(volume.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Round once at the budget aggregation, never per line.
	total = total.Round(2)

	if total.Equal(decimal.NewFromFloat(budget.Volume)) {
		return 0, nil
	}

	if err := j.writer.UpdateBudgetVolume(ctx, budget.ID, total.InexactFloat64()); err != nil {
		return 0, err
	}

	return 1, nil
}
