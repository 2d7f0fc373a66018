package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"

	"tradecoach/config"
	"tradecoach/internal/adapters/logger"
	"tradecoach/internal/adapters/quotes"
	"tradecoach/internal/adapters/sqlite"
	"tradecoach/internal/app"
	"tradecoach/internal/insights"
	"tradecoach/internal/ports"
	"tradecoach/internal/risk"
	"tradecoach/internal/traits"
	"tradecoach/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if cfg.ImportPath == "" && len(os.Args) > 1 {
		cfg.ImportPath = os.Args[1]
	}
	if cfg.ImportPath == "" {
		log.Fatal("FATAL: No import file given (set IMPORT_PATH or pass a path argument)")
	}

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String(), "format": cfg.LogFormat})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 4. Load Risk Rule Book
	thresholds, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to load risk rules: %v", err)
	}

	// 5. Optional Quote Provider (crypto mark-to-market only)
	var quoteProvider ports.QuoteProvider
	if cfg.QuotesEnabled {
		qc, err := quotes.New(quotes.Config{APIKey: cfg.APIKey, SecretKey: cfg.SecretKey, Logger: appLogger})
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize quote provider: %v", err)
		}
		quoteProvider = qc
	}

	// 6. Initialize Analysis Service
	service, err := app.NewAnalysisService(
		appLogger,
		repo,
		repo,
		repo,
		traits.NewEngine(nil),
		risk.NewValidator(thresholds),
		quoteProvider,
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize analysis service: %v", err)
	}

	// 7. Run the Pipeline
	ctx := context.Background()
	raw, err := os.ReadFile(cfg.ImportPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to read import file: %v", err)
	}

	summary, err := service.ImportAndAnalyze(ctx, cfg.UserID, string(raw), nil)
	if err != nil {
		appLogger.Error(ctx, err, "Import failed")
		log.Fatalf("FATAL: Import failed: %v", err)
	}

	fmt.Printf("Imported %d positions | total value $%.2f | realized P&L $%.2f | win rate %.0f%% | sharpe %.1f\n",
		len(summary.Positions), summary.TotalValue, summary.TotalPNL, summary.WinRate*100, summary.Sharpe)
	for _, t := range summary.Traits.All() {
		fmt.Printf("  %-20s %3d (p%d, %s)\n", t.Name, t.Score.Score, t.Score.Percentile, t.Score.Trend)
	}

	spots, err := service.DeriveBlindSpots(ctx, cfg.UserID, insights.FeatureSet{})
	if err != nil {
		appLogger.Error(ctx, err, "Blind-spot derivation failed")
	} else {
		for _, spot := range spots {
			fmt.Printf("[%s] %s: %s\n", spot.Severity, spot.Title, spot.Body)
		}
	}

	// 8. Optional CSV Export
	if cfg.ExportCSVPath != "" {
		if err := utils.WritePositionsToCSV(summary.Positions, cfg.ExportCSVPath); err != nil {
			appLogger.Error(ctx, err, "Failed to export positions CSV")
		} else {
			appLogger.Info(ctx, "Positions exported", map[string]interface{}{"path": cfg.ExportCSVPath})
		}
	}
}

func newLogger(cfg *config.Config) ports.Logger {
	if cfg.LogFormat == "json" {
		zl, err := logger.NewZapLogger(cfg.LogLevel)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize zap logger: %v", err)
		}
		return zl
	}
	return logger.NewStdLogger(cfg.LogLevel)
}
