package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"mobiliario/internal/batch"
	"mobiliario/internal/commons"
	"mobiliario/internal/config"
	"mobiliario/internal/infrastructure/logger"
	"mobiliario/internal/infrastructure/mysql"
)

func main() {
	os.Exit(run())
}

func run() int {
	jobName := flag.String("job", "all", "job to run: all, volume, price, bonification, stock")
	budgetID := flag.Uint("budget", 0, "restrict the run to one budget id (0 = all budgets)")
	configPath := flag.String("config", "", "path to a yaml config file (default: environment)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = commons.LoadConfig(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Printf("loading config: %v", err)
		return 1
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Printf("creating logger: %v", err)
		return 1
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Error("connecting to database", zap.Error(err))
		return 1
	}
	defer db.Close()

	runner := batch.NewModule(db, cfg, zapLogger)

	scope := batch.Scope{}
	if *budgetID > 0 {
		id := *budgetID
		scope.BudgetID = &id
	}

	ctx := context.Background()

	var results []batch.JobResult
	if *jobName == "all" {
		results = runner.RunAll(ctx, scope)
	} else {
		report, err := runner.Run(ctx, *jobName, scope)
		results = []batch.JobResult{{Job: *jobName, Report: report, Err: err}}
	}

	exitCode := 0
	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("%-13s error: %v\n", result.Job, result.Err)
			exitCode = 1
			continue
		}
		fmt.Printf("%-13s processed=%d updated=%d failed=%d\n",
			result.Job, result.Report.Processed, result.Report.Updated, result.Report.Failed)
		if result.Report.Failed > 0 {
			exitCode = 1
		}
	}

	return exitCode
}
