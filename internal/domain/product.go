package domain

import "time"

type ProductKind string

const (
	ProductSimple ProductKind = "SIMPLE"
	ProductCombo  ProductKind = "COMBO"
)

type Product struct {
	ID             int
	Name           string
	Kind           ProductKind
	Volume         *float64
	Stock          int
	StockProductID *int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Product) IsCombo() bool {
	return p.Kind == ProductCombo
}

// OwnVolume returns the product's own displacement volume, treating a
// missing value as zero. Combos never carry an own volume.
func (p Product) OwnVolume() float64 {
	if p.Kind == ProductCombo || p.Volume == nil {
		return 0
	}
	return *p.Volume
}

// StockProduct returns the id of the product whose stock counter is
// authoritative for this product: the redirect target when set, else itself.
func (p Product) StockProduct() int {
	if p.StockProductID != nil {
		return *p.StockProductID
	}
	return p.ID
}

type ProductComponent struct {
	ID              int
	ParentProductID int
	ChildProductID  int
	Quantity        int
}

type ProductPrice struct {
	ID                 int
	ProductID          int
	ValidFrom          time.Time
	ValidTo            time.Time
	ClientBonification bool
}

// Covers reports whether date falls within [ValidFrom, ValidTo], both
// endpoints inclusive, compared at calendar-date granularity.
func (pp ProductPrice) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(pp.ValidFrom)) && !d.After(DateOnly(pp.ValidTo))
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
