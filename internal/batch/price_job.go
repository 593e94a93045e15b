package batch

import (
	"context"

	"go.uber.org/zap"

	"mobiliario/internal/domain"
)

// PriceJob recomputes the per-line-item hasPrice flag against the budget's
// event date and the budget-level AND-reduction over all line items.
// Budgets without an event date cannot be priced and get the budget flag
// forced to false, leaving line items untouched.
type PriceJob struct {
	budgets BudgetSource
	writer  BudgetWriter
	prices  PriceResolver
	logger  *zap.Logger
}

func NewPriceJob(budgets BudgetSource, writer BudgetWriter, prices PriceResolver, logger *zap.Logger) *PriceJob {
	return &PriceJob{
		budgets: budgets,
		writer:  writer,
		prices:  prices,
		logger:  logger,
	}
}

func (j *PriceJob) Name() string {
	return "price"
}

func (j *PriceJob) Run(ctx context.Context, scope Scope) (Report, error) {
	budgets, err := j.budgets.FindBudgets(ctx, scope.Filter())
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, budget := range budgets {
		writes, err := j.processBudget(ctx, budget)
		if err != nil {
			report.Failed++
			j.logger.Error("price recomputation failed", zap.Uint("budgetId", budget.ID), zap.Error(err))
			continue
		}
		report.Processed++
		report.Updated += writes
	}

	j.logger.Info("price job finished",
		zap.Int("processed", report.Processed),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed))

	return report, nil
}

func (j *PriceJob) processBudget(ctx context.Context, budget domain.Budget) (int, error) {
	if budget.DateEvent == nil {
		if !budget.ProductsHasPrices {
			return 0, nil
		}
		if err := j.writer.UpdateBudgetHasPrices(ctx, budget.ID, false); err != nil {
			return 0, err
		}
		return 1, nil
	}

	items, err := j.budgets.FindLineItems(ctx, budget.ID)
	if err != nil {
		return 0, err
	}

	writes := 0
	allHavePrices := true
	for _, item := range items {
		hasPrice, err := j.prices.HasPrice(ctx, item.ProductID, *budget.DateEvent)
		if err != nil {
			return writes, err
		}

		if hasPrice != item.HasPrice {
			if err := j.writer.UpdateLineItemHasPrice(ctx, item.ID, hasPrice); err != nil {
				return writes, err
			}
			writes++
		}

		allHavePrices = allHavePrices && hasPrice
	}

	if allHavePrices != budget.ProductsHasPrices {
		if err := j.writer.UpdateBudgetHasPrices(ctx, budget.ID, allHavePrices); err != nil {
			return writes, err
		}
		writes++
	}

	return writes, nil
}
