package resolver

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "mobiliario/internal/errors"
)

// VolumeResolver computes the total displacement volume of a product.
// Simple products contribute their own volume; combos sum their components
// recursively, each child weighted by the component quantity. The result is
// unrounded: callers round once at their outermost aggregation.
type VolumeResolver struct {
	products ProductSource
	logger   *zap.Logger
}

func NewVolumeResolver(products ProductSource, logger *zap.Logger) *VolumeResolver {
	return &VolumeResolver{
		products: products,
		logger:   logger,
	}
}

func (r *VolumeResolver) Resolve(ctx context.Context, productID int) (decimal.Decimal, error) {
	return r.resolve(ctx, productID, visited{})
}

func (r *VolumeResolver) resolve(ctx context.Context, productID int, seen visited) (decimal.Decimal, error) {
	product, err := r.products.FindProduct(ctx, productID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			// Missing products contribute nothing.
			r.logger.Warn("product not found while resolving volume", zap.Int("productId", productID))
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	if !product.IsCombo() {
		return decimal.NewFromFloat(product.OwnVolume()), nil
	}

	if err := seen.enter(productID); err != nil {
		return decimal.Zero, err
	}
	defer seen.leave(productID)

	components, err := r.products.FindComponents(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, c := range components {
		childVolume, err := r.resolve(ctx, c.ChildProductID, seen)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(childVolume.Mul(decimal.NewFromInt(int64(c.Quantity))))
	}

	return total, nil
}
