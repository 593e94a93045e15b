package batch

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"mobiliario/internal/domain"
)

// fakeBudgetStore backs the jobs with in-memory budgets and applies writes
// to its own state, so a second run sees what the first one persisted.
type fakeBudgetStore struct {
	budgets []domain.Budget
	items   map[uint][]domain.BudgetLineItem

	writes        int
	lineItemsErrs map[uint]error
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{
		items:         map[uint][]domain.BudgetLineItem{},
		lineItemsErrs: map[uint]error{},
	}
}

func (f *fakeBudgetStore) FindBudgets(_ context.Context, filter domain.BudgetFilter) ([]domain.Budget, error) {
	var out []domain.Budget
	for _, b := range f.budgets {
		if filter.ID != nil && b.ID != *filter.ID {
			continue
		}
		if filter.HasEventDate != nil && *filter.HasEventDate != (b.DateEvent != nil) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBudgetStore) FindLineItems(_ context.Context, budgetID uint) ([]domain.BudgetLineItem, error) {
	if err := f.lineItemsErrs[budgetID]; err != nil {
		return nil, err
	}
	return f.items[budgetID], nil
}

func (f *fakeBudgetStore) UpdateLineItemHasPrice(_ context.Context, lineItemID uint, hasPrice bool) error {
	f.writes++
	return f.mutateItem(lineItemID, func(item *domain.BudgetLineItem) {
		item.HasPrice = hasPrice
	})
}

func (f *fakeBudgetStore) UpdateLineItemBonification(_ context.Context, lineItemID uint, bonification bool) error {
	f.writes++
	return f.mutateItem(lineItemID, func(item *domain.BudgetLineItem) {
		item.ClientBonification = bonification
	})
}

func (f *fakeBudgetStore) UpdateBudgetVolume(_ context.Context, budgetID uint, volume float64) error {
	f.writes++
	return f.mutateBudget(budgetID, func(b *domain.Budget) {
		b.Volume = volume
	})
}

func (f *fakeBudgetStore) UpdateBudgetHasPrices(_ context.Context, budgetID uint, hasPrices bool) error {
	f.writes++
	return f.mutateBudget(budgetID, func(b *domain.Budget) {
		b.ProductsHasPrices = hasPrices
	})
}

func (f *fakeBudgetStore) UpdateBudgetHasStock(_ context.Context, budgetID uint, hasStock bool) error {
	f.writes++
	return f.mutateBudget(budgetID, func(b *domain.Budget) {
		b.ProductsHasStock = hasStock
	})
}

func (f *fakeBudgetStore) mutateBudget(budgetID uint, mutate func(*domain.Budget)) error {
	for i := range f.budgets {
		if f.budgets[i].ID == budgetID {
			mutate(&f.budgets[i])
			return nil
		}
	}
	return errors.New("budget not found")
}

func (f *fakeBudgetStore) mutateItem(lineItemID uint, mutate func(*domain.BudgetLineItem)) error {
	for budgetID := range f.items {
		items := f.items[budgetID]
		for i := range items {
			if items[i].ID == lineItemID {
				mutate(&items[i])
				return nil
			}
		}
	}
	return errors.New("line item not found")
}

type stubVolumeResolver struct {
	volumes map[int]decimal.Decimal
	errs    map[int]error
}

func (s *stubVolumeResolver) Resolve(_ context.Context, productID int) (decimal.Decimal, error) {
	if err := s.errs[productID]; err != nil {
		return decimal.Zero, err
	}
	return s.volumes[productID], nil
}

type stubPriceResolver struct {
	priced map[int]bool
	errs   map[int]error
}

func (s *stubPriceResolver) HasPrice(_ context.Context, productID int, _ time.Time) (bool, error) {
	if err := s.errs[productID]; err != nil {
		return false, err
	}
	return s.priced[productID], nil
}

type stubBonificationResolver struct {
	results map[int]domain.Bonification
	errs    map[int]error
}

func (s *stubBonificationResolver) Resolve(_ context.Context, productID int, _ time.Time) (domain.Bonification, error) {
	if err := s.errs[productID]; err != nil {
		return domain.NoBonification(), err
	}
	return s.results[productID], nil
}

type stubStockResolver struct {
	results map[uint]bool
	errs    map[uint]error
}

func (s *stubStockResolver) HasSufficientStock(_ context.Context, budget domain.Budget, _ []domain.BudgetLineItem) (bool, error) {
	if err := s.errs[budget.ID]; err != nil {
		return false, err
	}
	return s.results[budget.ID], nil
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
