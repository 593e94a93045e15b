package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mobiliario/internal/domain"
	"mobiliario/internal/errors"
)

type MySQLBudgetRepository struct {
	db *sql.DB
}

func NewMySQLBudgetRepository(db *sql.DB) *MySQLBudgetRepository {
	return &MySQLBudgetRepository{db: db}
}

func (r *MySQLBudgetRepository) FindBudgets(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error) {
	query := `
		SELECT id, clientId, dateEvent, days, volume, productsHasPrices,
		       productsHasStock, createdAt, updatedAt
		FROM Budget
		WHERE 1 = 1
	`
	var args []interface{}

	if filter.ID != nil {
		query += " AND id = ?"
		args = append(args, *filter.ID)
	}
	if filter.HasEventDate != nil {
		if *filter.HasEventDate {
			query += " AND dateEvent IS NOT NULL"
		} else {
			query += " AND dateEvent IS NULL"
		}
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var b domain.Budget
		err := rows.Scan(
			&b.ID, &b.ClientID, &b.DateEvent, &b.Days, &b.Volume,
			&b.ProductsHasPrices, &b.ProductsHasStock, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning budget row: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (r *MySQLBudgetRepository) FindLineItems(ctx context.Context, budgetID uint) ([]domain.BudgetLineItem, error) {
	query := `
		SELECT id, budgetId, productId, quantity, hasPrice, clientBonification
		FROM BudgetLineItem
		WHERE budgetId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("querying budget line items: %w", err)
	}
	defer rows.Close()

	var items []domain.BudgetLineItem
	for rows.Next() {
		var item domain.BudgetLineItem
		err := rows.Scan(
			&item.ID, &item.BudgetID, &item.ProductID, &item.Quantity,
			&item.HasPrice, &item.ClientBonification,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning line item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLBudgetRepository) UpdateLineItemHasPrice(ctx context.Context, lineItemID uint, hasPrice bool) error {
	return r.exec(ctx,
		`UPDATE BudgetLineItem SET hasPrice = ? WHERE id = ?`,
		fmt.Sprintf("line item with id %d not found", lineItemID),
		hasPrice, lineItemID,
	)
}

func (r *MySQLBudgetRepository) UpdateLineItemBonification(ctx context.Context, lineItemID uint, bonification bool) error {
	return r.exec(ctx,
		`UPDATE BudgetLineItem SET clientBonification = ? WHERE id = ?`,
		fmt.Sprintf("line item with id %d not found", lineItemID),
		bonification, lineItemID,
	)
}

func (r *MySQLBudgetRepository) UpdateBudgetVolume(ctx context.Context, budgetID uint, volume float64) error {
	return r.exec(ctx,
		`UPDATE Budget SET volume = ? WHERE id = ?`,
		fmt.Sprintf("budget with id %d not found", budgetID),
		volume, budgetID,
	)
}

func (r *MySQLBudgetRepository) UpdateBudgetHasPrices(ctx context.Context, budgetID uint, hasPrices bool) error {
	return r.exec(ctx,
		`UPDATE Budget SET productsHasPrices = ? WHERE id = ?`,
		fmt.Sprintf("budget with id %d not found", budgetID),
		hasPrices, budgetID,
	)
}

func (r *MySQLBudgetRepository) UpdateBudgetHasStock(ctx context.Context, budgetID uint, hasStock bool) error {
	return r.exec(ctx,
		`UPDATE Budget SET productsHasStock = ? WHERE id = ?`,
		fmt.Sprintf("budget with id %d not found", budgetID),
		hasStock, budgetID,
	)
}

func (r *MySQLBudgetRepository) exec(ctx context.Context, query, notFoundMsg string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing update: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(notFoundMsg)
	}

	return nil
}
