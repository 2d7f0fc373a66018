package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"tradecoach/config"
	"tradecoach/internal/adapters/logger"
	"tradecoach/internal/adapters/quotes"
	"tradecoach/internal/adapters/sqlite"
	"tradecoach/internal/app"
	"tradecoach/internal/domain"
	"tradecoach/internal/ports"
	"tradecoach/internal/risk"
	"tradecoach/internal/traits"
)

func main() {
	ticker := flag.String("ticker", "", "ticker symbol of the order")
	side := flag.String("side", "buy", "order side: buy or sell")
	quantity := flag.Float64("qty", 0, "order quantity")
	price := flag.Float64("price", 0, "order limit price")
	sector := flag.String("sector", "", "sector of the ticker")
	cash := flag.Float64("cash", 0, "current cash balance")
	peak := flag.Float64("peak", 0, "all-time-high portfolio value")
	flag.Parse()

	if *ticker == "" || *quantity <= 0 || *price <= 0 {
		log.Fatal("FATAL: -ticker, -qty and -price are required")
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	// 4. Load Risk Rule Book
	thresholds, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to load risk rules: %v", err)
	}

	// 5. Optional Quote Provider
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

	order := domain.TradeOrder{
		Ticker:   strings.ToUpper(*ticker),
		Side:     parseSide(*side),
		Quantity: *quantity,
		Price:    *price,
		Sector:   *sector,
	}

	checks, err := service.ValidateOrder(context.Background(), cfg.UserID, order, *cash, *peak)
	if err != nil {
		log.Fatalf("FATAL: Validation failed: %v", err)
	}

	blocked := false
	for _, check := range checks {
		status := "PASS"
		if !check.Passed {
			status = strings.ToUpper(string(check.Severity))
			if check.Severity == domain.SeverityError {
				blocked = true
			}
		}
		fmt.Printf("[%s] %s: %s\n", status, check.Rule, check.Message)
	}

	if blocked {
		fmt.Println("Order BLOCKED")
		return
	}
	fill := risk.FillPrice(order.Side, order.Price)
	fmt.Printf("Order allowed | est. fill $%.4f | commission $%.2f\n", fill, risk.Commission(order.Quantity))
}

func parseSide(s string) domain.Action {
	if strings.EqualFold(s, "sell") {
		return domain.Sell
	}
	return domain.Buy
}
