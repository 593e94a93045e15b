package resolver

import (
	"context"
	"time"

	"mobiliario/internal/domain"
	apperrors "mobiliario/internal/errors"
)

// ProductSource is the product-graph access the resolvers need. Absent rows
// are reported with errors.NotFoundError; the resolvers map absence to the
// conservative value instead of failing.
type ProductSource interface {
	FindProduct(ctx context.Context, id int) (*domain.Product, error)
	FindComponents(ctx context.Context, parentProductID int) ([]domain.ProductComponent, error)
	FindPrices(ctx context.Context, productID int) ([]domain.ProductPrice, error)
}

type ReservationSource interface {
	FindOverlapping(ctx context.Context, stockProductID int, dateFrom, dateTo time.Time, excludeBudgetID *uint) ([]domain.StockReservation, error)
}

// visited is the arena of product ids already entered during a combo
// traversal. Component edges must form a DAG; enter reports a CycleError
// instead of letting a broken graph recurse forever.
type visited map[int]struct{}

func (v visited) enter(productID int) error {
	if _, seen := v[productID]; seen {
		return apperrors.NewCycleError(productID)
	}
	v[productID] = struct{}{}
	return nil
}

func (v visited) leave(productID int) {
	delete(v, productID)
}
