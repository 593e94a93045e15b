package domain

import "time"

type Budget struct {
	ID                uint
	ClientID          int
	DateEvent         *time.Time
	Days              int
	Volume            float64
	ProductsHasPrices bool
	ProductsHasStock  bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EventRange returns the inclusive calendar-date range occupied by the
// event, [dateEvent, dateEvent + days - 1]. ok is false when the budget
// has no event date or a non-positive duration.
func (b Budget) EventRange() (from, to time.Time, ok bool) {
	if b.DateEvent == nil || b.Days <= 0 {
		return time.Time{}, time.Time{}, false
	}
	from = DateOnly(*b.DateEvent)
	to = from.AddDate(0, 0, b.Days-1)
	return from, to, true
}

type BudgetLineItem struct {
	ID                 uint
	BudgetID           uint
	ProductID          int
	Quantity           int
	HasPrice           bool
	ClientBonification bool
}

// BudgetFilter narrows a budget listing. Nil fields are ignored.
type BudgetFilter struct {
	ID           *uint
	HasEventDate *bool
}
