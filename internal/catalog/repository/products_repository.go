package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mobiliario/internal/domain"
	"mobiliario/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) FindProduct(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, kind, volume, stock, stockProductId, isActive,
		       createdAt, updatedAt
		FROM Product
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Kind, &p.Volume, &p.Stock, &p.StockProductID,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductRepository) FindComponents(ctx context.Context, parentProductID int) ([]domain.ProductComponent, error) {
	query := `
		SELECT id, parentProductId, childProductId, quantity
		FROM ProductComponent
		WHERE parentProductId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, parentProductID)
	if err != nil {
		return nil, fmt.Errorf("querying product components: %w", err)
	}
	defer rows.Close()

	var components []domain.ProductComponent
	for rows.Next() {
		var c domain.ProductComponent
		if err := rows.Scan(&c.ID, &c.ParentProductID, &c.ChildProductID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scanning component row: %w", err)
		}
		components = append(components, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating component rows: %w", err)
	}

	return components, nil
}

// FindPrices returns the price rows for a product ordered by id ascending,
// so overlapping validity ranges resolve to the lowest id first.
func (r *MySQLProductRepository) FindPrices(ctx context.Context, productID int) ([]domain.ProductPrice, error) {
	query := `
		SELECT id, productId, validFrom, validTo, clientBonification
		FROM ProductPrice
		WHERE productId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying product prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.ProductPrice
	for rows.Next() {
		var pp domain.ProductPrice
		if err := rows.Scan(&pp.ID, &pp.ProductID, &pp.ValidFrom, &pp.ValidTo, &pp.ClientBonification); err != nil {
			return nil, fmt.Errorf("scanning price row: %w", err)
		}
		prices = append(prices, pp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price rows: %w", err)
	}

	return prices, nil
}
