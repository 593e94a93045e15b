package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database. Expects a MySQL instance on
// localhost:3306 with a database named 'mobiliario_test'; tests are skipped
// when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/mobiliario_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"StockReservation", "BudgetLineItem", "Budget", "ProductPrice", "ProductComponent", "Product"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the repository tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		kind VARCHAR(20) NOT NULL DEFAULT 'SIMPLE',
		volume DECIMAL(10,3),
		stock INT NOT NULL DEFAULT 0,
		stockProductId INT,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createProductComponentTable := `
	CREATE TABLE IF NOT EXISTS ProductComponent (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		parentProductId INT NOT NULL,
		childProductId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		INDEX idx_parent (parentProductId)
	)`

	createProductPriceTable := `
	CREATE TABLE IF NOT EXISTS ProductPrice (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId INT NOT NULL,
		validFrom DATE NOT NULL,
		validTo DATE NOT NULL,
		clientBonification TINYINT(1) NOT NULL DEFAULT 0,
		INDEX idx_product (productId)
	)`

	createBudgetTable := `
	CREATE TABLE IF NOT EXISTS Budget (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		clientId INT NOT NULL DEFAULT 0,
		dateEvent DATE,
		days INT NOT NULL DEFAULT 1,
		volume DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		productsHasPrices TINYINT(1) NOT NULL DEFAULT 0,
		productsHasStock TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createBudgetLineItemTable := `
	CREATE TABLE IF NOT EXISTS BudgetLineItem (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		budgetId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		hasPrice TINYINT(1) NOT NULL DEFAULT 0,
		clientBonification TINYINT(1) NOT NULL DEFAULT 0,
		INDEX idx_budget (budgetId)
	)`

	createStockReservationTable := `
	CREATE TABLE IF NOT EXISTS StockReservation (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		stockProductId INT NOT NULL,
		budgetId INT UNSIGNED,
		dateFrom DATE NOT NULL,
		dateTo DATE NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		INDEX idx_stock_product (stockProductId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Product", createProductTable},
		{"ProductComponent", createProductComponentTable},
		{"ProductPrice", createProductPriceTable},
		{"Budget", createBudgetTable},
		{"BudgetLineItem", createBudgetLineItemTable},
		{"StockReservation", createStockReservationTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
