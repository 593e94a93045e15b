package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mobiliario/internal/domain"
	apperrors "mobiliario/internal/errors"
)

// StockResolver decides whether a budget can be served with the stock on
// hand over its event date range, counting concurrent reservations held by
// other budgets day by day.
type StockResolver struct {
	products     ProductSource
	reservations ReservationSource
	logger       *zap.Logger
}

func NewStockResolver(products ProductSource, reservations ReservationSource, logger *zap.Logger) *StockResolver {
	return &StockResolver{
		products:     products,
		reservations: reservations,
		logger:       logger,
	}
}

// HasSufficientStock reports whether every line item of the budget fits in
// the available stock over [dateEvent, dateEvent + days - 1]. A budget
// without an event date, a duration, or line items is unavailable.
func (r *StockResolver) HasSufficientStock(ctx context.Context, budget domain.Budget, items []domain.BudgetLineItem) (bool, error) {
	dateFrom, dateTo, ok := budget.EventRange()
	if !ok || len(items) == 0 {
		return false, nil
	}

	excludeBudgetID := budget.ID

	for _, item := range items {
		product, err := r.products.FindProduct(ctx, item.ProductID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				r.logger.Warn("product not found while resolving stock",
					zap.Uint("budgetId", budget.ID), zap.Int("productId", item.ProductID))
				return false, nil
			}
			return false, err
		}

		totalStock, err := r.totalStock(ctx, product)
		if err != nil {
			return false, err
		}
		if totalStock == 0 {
			return false, nil
		}

		maxUsed, err := r.MaxUsedStock(ctx, product.StockProduct(), dateFrom, dateTo, &excludeBudgetID)
		if err != nil {
			return false, err
		}

		if totalStock-maxUsed < item.Quantity {
			return false, nil
		}
	}

	return true, nil
}

// MaxUsedStock computes the peak concurrent usage of a stock product over
// an inclusive date range: for every calendar day, the quantities of the
// reservations covering that day are summed, and the largest daily sum
// wins. Reservations on disjoint sub-ranges are never counted as
// concurrent.
func (r *StockResolver) MaxUsedStock(ctx context.Context, stockProductID int, dateFrom, dateTo time.Time, excludeBudgetID *uint) (int, error) {
	reservations, err := r.reservations.FindOverlapping(ctx, stockProductID, dateFrom, dateTo, excludeBudgetID)
	if err != nil {
		return 0, err
	}

	maxUsed := 0
	from := domain.DateOnly(dateFrom)
	to := domain.DateOnly(dateTo)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		used := 0
		for _, res := range reservations {
			if res.CoversDay(day) {
				used += res.Quantity
			}
		}
		if used > maxUsed {
			maxUsed = used
		}
	}

	return maxUsed, nil
}

// totalStock returns the stock counter of the stock-bearing product,
// following the redirect when the item accounts against another product.
func (r *StockResolver) totalStock(ctx context.Context, product *domain.Product) (int, error) {
	if product.StockProductID == nil {
		return product.Stock, nil
	}

	stockProduct, err := r.products.FindProduct(ctx, *product.StockProductID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			r.logger.Warn("stock product not found",
				zap.Int("productId", product.ID), zap.Int("stockProductId", *product.StockProductID))
			return 0, nil
		}
		return 0, err
	}

	return stockProduct.Stock, nil
}
