package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mobiliario/internal/domain"
)

type MySQLReservationRepository struct {
	db *sql.DB
}

func NewMySQLReservationRepository(db *sql.DB) *MySQLReservationRepository {
	return &MySQLReservationRepository{db: db}
}

// FindOverlapping returns the reservations for a stock product whose
// occupied days intersect [dateFrom, dateTo]: starting inside the range,
// ending inside it, or spanning it. Reservations owned by excludeBudgetID
// are left out so a budget never competes with its own reservations.
func (r *MySQLReservationRepository) FindOverlapping(
	ctx context.Context,
	stockProductID int,
	dateFrom time.Time,
	dateTo time.Time,
	excludeBudgetID *uint,
) ([]domain.StockReservation, error) {
	query := `
		SELECT id, stockProductId, budgetId, dateFrom, dateTo, quantity
		FROM StockReservation
		WHERE stockProductId = ?
		  AND (
		        (dateFrom >= ? AND dateFrom <= ?)
		     OR (dateTo >= ? AND dateTo <= ?)
		     OR (dateFrom < ? AND dateTo > ?)
		  )
	`
	args := []interface{}{
		stockProductID,
		dateFrom, dateTo,
		dateFrom, dateTo,
		dateFrom, dateTo,
	}

	if excludeBudgetID != nil {
		query += " AND (budgetId IS NULL OR budgetId <> ?)"
		args = append(args, *excludeBudgetID)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stock reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.StockReservation
	for rows.Next() {
		var res domain.StockReservation
		err := rows.Scan(
			&res.ID, &res.StockProductID, &res.BudgetID,
			&res.DateFrom, &res.DateTo, &res.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return reservations, nil
}
