package batch

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"mobiliario/internal/domain"
)

type BudgetSource interface {
	FindBudgets(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error)
	FindLineItems(ctx context.Context, budgetID uint) ([]domain.BudgetLineItem, error)
}

// BudgetWriter persists recomputed derived fields. Jobs call a writer only
// when the computed value differs from the stored one; running a job twice
// over unchanged data performs no writes on the second run.
type BudgetWriter interface {
	UpdateLineItemHasPrice(ctx context.Context, lineItemID uint, hasPrice bool) error
	UpdateLineItemBonification(ctx context.Context, lineItemID uint, bonification bool) error
	UpdateBudgetVolume(ctx context.Context, budgetID uint, volume float64) error
	UpdateBudgetHasPrices(ctx context.Context, budgetID uint, hasPrices bool) error
	UpdateBudgetHasStock(ctx context.Context, budgetID uint, hasStock bool) error
}

type VolumeResolver interface {
	Resolve(ctx context.Context, productID int) (decimal.Decimal, error)
}

type PriceResolver interface {
	HasPrice(ctx context.Context, productID int, date time.Time) (bool, error)
}

type BonificationResolver interface {
	Resolve(ctx context.Context, productID int, date time.Time) (domain.Bonification, error)
}

type StockResolver interface {
	HasSufficientStock(ctx context.Context, budget domain.Budget, items []domain.BudgetLineItem) (bool, error)
}
