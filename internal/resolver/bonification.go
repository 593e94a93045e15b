package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mobiliario/internal/domain"
	apperrors "mobiliario/internal/errors"
)

// BonificationResolver determines the client-bonification flag applicable
// to a product on a date. Simple products take the flag of their valid
// price. Combos walk components in storage order with first-found-wins
// semantics: a simple child ends the walk immediately with its own result,
// whatever it is, while a nested combo ends it only when its result is not
// false; otherwise the walk moves on to the next sibling.
type BonificationResolver struct {
	products ProductSource
	logger   *zap.Logger
}

func NewBonificationResolver(products ProductSource, logger *zap.Logger) *BonificationResolver {
	return &BonificationResolver{
		products: products,
		logger:   logger,
	}
}

func (r *BonificationResolver) Resolve(ctx context.Context, productID int, date time.Time) (domain.Bonification, error) {
	return r.resolve(ctx, productID, date, visited{})
}

func (r *BonificationResolver) resolve(ctx context.Context, productID int, date time.Time, seen visited) (domain.Bonification, error) {
	product, err := r.products.FindProduct(ctx, productID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			r.logger.Warn("product not found while resolving bonification", zap.Int("productId", productID))
			return domain.NoBonification(), nil
		}
		return domain.NoBonification(), err
	}

	if !product.IsCombo() {
		return r.ownBonification(ctx, productID, date)
	}

	if err := seen.enter(productID); err != nil {
		return domain.NoBonification(), err
	}
	defer seen.leave(productID)

	components, err := r.products.FindComponents(ctx, productID)
	if err != nil {
		return domain.NoBonification(), err
	}

	for _, c := range components {
		child, err := r.products.FindProduct(ctx, c.ChildProductID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				continue
			}
			return domain.NoBonification(), err
		}

		if !child.IsCombo() {
			// A simple child settles the combo, whatever its flag says.
			return r.ownBonification(ctx, child.ID, date)
		}

		nested, err := r.resolve(ctx, child.ID, date, seen)
		if err != nil {
			return domain.NoBonification(), err
		}
		if nested.Bool() {
			return nested, nil
		}
	}

	return domain.NoBonification(), nil
}

// ownBonification looks up the price valid on date for a single product and
// returns its flag. Overlapping validity ranges resolve to the first match
// in the source order (lowest id).
func (r *BonificationResolver) ownBonification(ctx context.Context, productID int, date time.Time) (domain.Bonification, error) {
	prices, err := r.products.FindPrices(ctx, productID)
	if err != nil {
		return domain.NoBonification(), err
	}

	for _, pp := range prices {
		if pp.Covers(date) {
			return domain.BonificationOf(pp.ClientBonification), nil
		}
	}

	return domain.NoBonification(), nil
}
