package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "mobiliario/internal/errors"
)

// PriceResolver determines whether a product is fully priced on a date: a
// simple product needs one valid price row, a combo needs every leaf of its
// component tree priced. Absent products fail closed.
type PriceResolver struct {
	products ProductSource
	logger   *zap.Logger
}

func NewPriceResolver(products ProductSource, logger *zap.Logger) *PriceResolver {
	return &PriceResolver{
		products: products,
		logger:   logger,
	}
}

func (r *PriceResolver) HasPrice(ctx context.Context, productID int, date time.Time) (bool, error) {
	return r.hasPrice(ctx, productID, date, visited{})
}

func (r *PriceResolver) hasPrice(ctx context.Context, productID int, date time.Time, seen visited) (bool, error) {
	product, err := r.products.FindProduct(ctx, productID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			r.logger.Warn("product not found while resolving price", zap.Int("productId", productID))
			return false, nil
		}
		return false, err
	}

	if !product.IsCombo() {
		return r.hasOwnPrice(ctx, productID, date)
	}

	if err := seen.enter(productID); err != nil {
		return false, err
	}
	defer seen.leave(productID)

	components, err := r.products.FindComponents(ctx, productID)
	if err != nil {
		return false, err
	}

	// A combo with no parts is never priced.
	if len(components) == 0 {
		return false, nil
	}

	for _, c := range components {
		childHasPrice, err := r.hasPrice(ctx, c.ChildProductID, date, seen)
		if err != nil {
			return false, err
		}
		if !childHasPrice {
			return false, nil
		}
	}

	return true, nil
}

func (r *PriceResolver) hasOwnPrice(ctx context.Context, productID int, date time.Time) (bool, error) {
	prices, err := r.products.FindPrices(ctx, productID)
	if err != nil {
		return false, err
	}

	for _, pp := range prices {
		if pp.Covers(date) {
			return true, nil
		}
	}

	return false, nil
}
