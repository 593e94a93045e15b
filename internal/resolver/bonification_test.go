package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "mobiliario/internal/errors"
)

func TestBonificationResolver_SimpleProduct(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(1, nil)
	source.addPrice(1, date(2026, time.March, 1), date(2026, time.March, 31), true)

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 1, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, result.Found)
	assert.True(t, result.Bool())
}

func TestBonificationResolver_SimpleProduct_NoPrice(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(1, nil)

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 1, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.False(t, result.Found)
	assert.False(t, result.Bool())
}

func TestBonificationResolver_OverlappingPrices_LowestIDWins(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(1, nil)
	// Two overlapping validity ranges with contradicting flags; the first
	// one in source order decides.
	source.addPrice(1, date(2026, time.March, 1), date(2026, time.March, 31), true)
	source.addPrice(1, date(2026, time.March, 10), date(2026, time.March, 20), false)

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 1, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, result.Bool())
}

func TestBonificationResolver_FirstSimpleChildWins_EvenWhenFalse(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(1, nil)
	source.addSimple(2, nil)
	source.addPrice(1, date(2026, time.March, 1), date(2026, time.March, 31), false)
	source.addPrice(2, date(2026, time.March, 1), date(2026, time.March, 31), true)
	source.addCombo(10, component(10, 1, 1), component(10, 2, 1))

	r := NewBonificationResolver(source, zap.NewNop())

	// The first component is simple, so its false flag is returned
	// immediately; the bonified sibling is never consulted.
	result, err := r.Resolve(context.Background(), 10, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, result.Found)
	assert.False(t, result.Bool())
}

func TestBonificationResolver_NestedComboFalse_DoesNotStopIteration(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(1, nil)
	source.addSimple(2, nil)
	source.addPrice(1, date(2026, time.March, 1), date(2026, time.March, 31), false)
	source.addPrice(2, date(2026, time.March, 1), date(2026, time.March, 31), true)
	source.addCombo(10, component(10, 1, 1)) // resolves to a false flag
	source.addCombo(20, component(20, 10, 1), component(20, 2, 1))

	r := NewBonificationResolver(source, zap.NewNop())

	// The nested combo's false result lets iteration continue to the
	// simple sibling, whose true flag wins.
	result, err := r.Resolve(context.Background(), 20, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, result.Bool())
}

func TestBonificationResolver_NestedComboTrue_ShortCircuits(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(1, nil)
	source.addSimple(2, nil)
	source.addPrice(1, date(2026, time.March, 1), date(2026, time.March, 31), true)
	source.addPrice(2, date(2026, time.March, 1), date(2026, time.March, 31), false)
	source.addCombo(10, component(10, 1, 1)) // resolves to a true flag
	source.addCombo(20, component(20, 10, 1), component(20, 2, 1))

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 20, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, result.Bool())
}

func TestBonificationResolver_EmptyCombo(t *testing.T) {
	source := newFakeProductSource()
	source.addCombo(10)

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 10, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.False(t, result.Found)
	assert.False(t, result.Bool())
}

func TestBonificationResolver_MissingChildSkipped(t *testing.T) {
	source := newFakeProductSource()
	source.addSimple(2, nil)
	source.addPrice(2, date(2026, time.March, 1), date(2026, time.March, 31), true)
	source.addCombo(10, component(10, 99, 1), component(10, 2, 1))

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 10, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, result.Bool())
}

func TestBonificationResolver_MissingProduct(t *testing.T) {
	source := newFakeProductSource()

	r := NewBonificationResolver(source, zap.NewNop())

	result, err := r.Resolve(context.Background(), 99, date(2026, time.March, 15))
	assert.NoError(t, err)
	assert.False(t, result.Bool())
}

func TestBonificationResolver_CycleFailsFast(t *testing.T) {
	source := newFakeProductSource()
	source.addCombo(10, component(10, 20, 1))
	source.addCombo(20, component(20, 10, 1))

	r := NewBonificationResolver(source, zap.NewNop())

	_, err := r.Resolve(context.Background(), 10, date(2026, time.March, 15))
	assert.Error(t, err)
	_, ok := apperrors.IsCycleError(err)
	assert.True(t, ok)
}
