package batch

import (
	"database/sql"

	"go.uber.org/zap"

	budgetrepo "mobiliario/internal/budget/repository"
	catalogrepo "mobiliario/internal/catalog/repository"
	"mobiliario/internal/config"
	"mobiliario/internal/resolver"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Runner {
	productRepo := catalogrepo.NewMySQLProductRepository(db)
	budgetRepo := budgetrepo.NewMySQLBudgetRepository(db)
	reservationRepo := budgetrepo.NewMySQLReservationRepository(db)

	volumeResolver := resolver.NewVolumeResolver(productRepo, logger)
	priceResolver := resolver.NewPriceResolver(productRepo, logger)
	bonificationResolver := resolver.NewBonificationResolver(productRepo, logger)
	stockResolver := resolver.NewStockResolver(productRepo, reservationRepo, logger)

	jobs := []Job{
		NewVolumeJob(budgetRepo, budgetRepo, volumeResolver, logger),
		NewPriceJob(budgetRepo, budgetRepo, priceResolver, logger),
		NewBonificationJob(budgetRepo, budgetRepo, bonificationResolver, logger),
		NewStockJob(budgetRepo, budgetRepo, stockResolver, logger),
	}

	return NewRunner(jobs, cfg.Batch.JobTimeout, logger)
}
