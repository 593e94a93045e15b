package batch

import (
	"context"

	"go.uber.org/zap"

	"mobiliario/internal/domain"
)

// StockJob recomputes the budget-level productsHasStock flag: whether every
// line item fits in the available stock over the event date range, counting
// reservations held by other budgets at their daily peak.
type StockJob struct {
	budgets BudgetSource
	writer  BudgetWriter
	stock   StockResolver
	logger  *zap.Logger
}

func NewStockJob(budgets BudgetSource, writer BudgetWriter, stock StockResolver, logger *zap.Logger) *StockJob {
	return &StockJob{
		budgets: budgets,
		writer:  writer,
		stock:   stock,
		logger:  logger,
	}
}

func (j *StockJob) Name() string {
	return "stock"
}

func (j *StockJob) Run(ctx context.Context, scope Scope) (Report, error) {
	budgets, err := j.budgets.FindBudgets(ctx, scope.Filter())
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, budget := range budgets {
		writes, err := j.processBudget(ctx, budget)
		if err != nil {
			report.Failed++
			j.logger.Error("stock recomputation failed", zap.Uint("budgetId", budget.ID), zap.Error(err))
			continue
		}
		report.Processed++
		report.Updated += writes
	}

	j.logger.Info("stock job finished",
		zap.Int("processed", report.Processed),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed))

	return report, nil
}

func (j *StockJob) processBudget(ctx context.Context, budget domain.Budget) (int, error) {
	items, err := j.budgets.FindLineItems(ctx, budget.ID)
	if err != nil {
		return 0, err
	}

	hasStock, err := j.stock.HasSufficientStock(ctx, budget, items)
	if err != nil {
		return 0, err
	}

	if hasStock == budget.ProductsHasStock {
		return 0, nil
	}

	if err := j.writer.UpdateBudgetHasStock(ctx, budget.ID, hasStock); err != nil {
		return 0, err
	}

	return 1, nil
}
