package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mobiliario/internal/errors"
	"mobiliario/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestProductRepository_FindProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := db.Exec(`
		INSERT INTO Product (id, name, kind, volume, stock, stockProductId, isActive)
		VALUES (1, 'Round table', 'SIMPLE', 1.250, 40, NULL, 1),
		       (2, 'Banquet set', 'COMBO', NULL, 0, NULL, 1),
		       (3, 'Folding chair white', 'SIMPLE', 0.300, 500, 4, 1)
	`)
	require.NoError(t, err)

	product, err := repo.FindProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Round table", product.Name)
	assert.False(t, product.IsCombo())
	require.NotNil(t, product.Volume)
	assert.Equal(t, 1.25, *product.Volume)
	assert.Equal(t, 40, product.Stock)
	assert.Nil(t, product.StockProductID)

	combo, err := repo.FindProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, combo.IsCombo())
	assert.Nil(t, combo.Volume)

	redirected, err := repo.FindProduct(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, redirected.StockProductID)
	assert.Equal(t, 4, *redirected.StockProductID)
}

func TestProductRepository_FindProduct_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := repo.FindProduct(context.Background(), 999)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_FindComponents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := db.Exec(`
		INSERT INTO ProductComponent (parentProductId, childProductId, quantity)
		VALUES (10, 1, 4),
		       (10, 2, 1),
		       (11, 1, 2)
	`)
	require.NoError(t, err)

	components, err := repo.FindComponents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, 1, components[0].ChildProductID)
	assert.Equal(t, 4, components[0].Quantity)
	assert.Equal(t, 2, components[1].ChildProductID)

	empty, err := repo.FindComponents(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepository_FindPrices_OrderedByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := db.Exec(`
		INSERT INTO ProductPrice (id, productId, validFrom, validTo, clientBonification)
		VALUES (5, 1, '2026-03-01', '2026-03-31', 1),
		       (2, 1, '2026-03-10', '2026-03-20', 0)
	`)
	require.NoError(t, err)

	prices, err := repo.FindPrices(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 2, prices[0].ID, "lowest id first so overlapping ranges resolve deterministically")
	assert.Equal(t, 5, prices[1].ID)
	assert.True(t, prices[1].ClientBonification)
}
