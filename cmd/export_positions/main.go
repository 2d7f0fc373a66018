package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"tradecoach/config"
	"tradecoach/internal/adapters/logger"
	"tradecoach/internal/adapters/sqlite"
	"tradecoach/internal/utils"
)

func main() {
	out := flag.String("out", "positions.csv", "output CSV path")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	positions, err := repo.FindPositions(context.Background(), cfg.UserID)
	if err != nil {
		log.Fatalf("FATAL: Failed to load positions: %v", err)
	}
	if err := utils.WritePositionsToCSV(positions, *out); err != nil {
		log.Fatalf("FATAL: Failed to write CSV: %v", err)
	}
	fmt.Printf("Exported %d positions to %s\n", len(positions), *out)
}
