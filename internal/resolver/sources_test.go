package resolver

import (
	"context"
	"fmt"
	"time"

	"mobiliario/internal/domain"
	apperrors "mobiliario/internal/errors"
)

// fakeProductSource serves a product graph held in memory, reporting
// missing ids the way the MySQL repository does.
type fakeProductSource struct {
	products   map[int]domain.Product
	components map[int][]domain.ProductComponent
	prices     map[int][]domain.ProductPrice
}

func newFakeProductSource() *fakeProductSource {
	return &fakeProductSource{
		products:   map[int]domain.Product{},
		components: map[int][]domain.ProductComponent{},
		prices:     map[int][]domain.ProductPrice{},
	}
}

func (f *fakeProductSource) FindProduct(_ context.Context, id int) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	return &p, nil
}

func (f *fakeProductSource) FindComponents(_ context.Context, parentProductID int) ([]domain.ProductComponent, error) {
	return f.components[parentProductID], nil
}

func (f *fakeProductSource) FindPrices(_ context.Context, productID int) ([]domain.ProductPrice, error) {
	return f.prices[productID], nil
}

func (f *fakeProductSource) addSimple(id int, volume *float64) {
	f.products[id] = domain.Product{ID: id, Kind: domain.ProductSimple, Volume: volume, IsActive: true}
}

func (f *fakeProductSource) addSimpleWithStock(id, stock int, stockProductID *int) {
	f.products[id] = domain.Product{
		ID:             id,
		Kind:           domain.ProductSimple,
		Stock:          stock,
		StockProductID: stockProductID,
		IsActive:       true,
	}
}

func (f *fakeProductSource) addCombo(id int, children ...domain.ProductComponent) {
	f.products[id] = domain.Product{ID: id, Kind: domain.ProductCombo, IsActive: true}
	f.components[id] = children
}

func (f *fakeProductSource) addPrice(productID int, from, to time.Time, bonification bool) {
	prices := f.prices[productID]
	f.prices[productID] = append(prices, domain.ProductPrice{
		ID:                 len(prices) + productID*100,
		ProductID:          productID,
		ValidFrom:          from,
		ValidTo:            to,
		ClientBonification: bonification,
	})
}

func component(parent, child, quantity int) domain.ProductComponent {
	return domain.ProductComponent{ParentProductID: parent, ChildProductID: child, Quantity: quantity}
}

type fakeReservationSource struct {
	reservations []domain.StockReservation
}

func (f *fakeReservationSource) FindOverlapping(_ context.Context, stockProductID int, dateFrom, dateTo time.Time, excludeBudgetID *uint) ([]domain.StockReservation, error) {
	var out []domain.StockReservation
	for _, res := range f.reservations {
		if res.StockProductID != stockProductID {
			continue
		}
		if excludeBudgetID != nil && res.BudgetID != nil && *res.BudgetID == *excludeBudgetID {
			continue
		}
		if res.Overlaps(dateFrom, dateTo) {
			out = append(out, res)
		}
	}
	return out, nil
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func uintPtr(u uint) *uint {
	return &u
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
