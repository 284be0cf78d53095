package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"path/filepath"

	"tradeTools/config"
	"tradeTools/internal/adapters/binanceclient"
	"tradeTools/internal/adapters/csvloader"
	"tradeTools/internal/adapters/logger"
	"tradeTools/internal/adapters/markprice"
	"tradeTools/internal/adapters/sqlite"
	"tradeTools/internal/domain"
	"tradeTools/internal/render"
	"tradeTools/internal/report"
)

// Progress statement: load the OrderClerk trade export, print the realized
// and unrealized tables, and write the trade details and period performance
// CSV exports.
func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize the quote source for marking open positions to market.
	// Only public endpoints are used, so missing API keys are fine.
	exchange, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	quotes, err := markprice.New(markprice.Config{Exchange: exchange, Logger: appLogger})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize mark price source")
		log.Fatalf("FATAL: Failed to initialize mark price source: %v", err)
	}

	// 4. Load the trade ledger
	loader, err := csvloader.New(csvloader.Config{Logger: appLogger, Quotes: quotes})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize trade loader")
		log.Fatalf("FATAL: Failed to initialize trade loader: %v", err)
	}
	ledger, err := loader.Load(ctx, cfg.TradesPath())
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to load trade CSV")
		log.Fatalf("FATAL: Failed to load trade CSV: %v", err)
	}

	// 5. Console tables
	fmt.Println("Realized trades:")
	render.RealizedTradesTable(os.Stdout, ledger.RealizedTrades())
	fmt.Println()
	fmt.Println("Unrealized trades:")
	render.UnrealizedTradesTable(os.Stdout, ledger.UnrealizedTrades())
	fmt.Println()

	// 6. CSV exports
	detailsPath := filepath.Join(cfg.OutputDir, "TradeDetails.csv")
	if err := writeTradeDetails(ledger, detailsPath); err != nil {
		appLogger.Error(ctx, err, "Failed to write trade details export")
		os.Exit(1)
	}
	appLogger.Info(ctx, "Trade details export written", map[string]interface{}{"path": detailsPath})

	perf := report.NewPeriodPerformance(ledger, cfg.PeriodType)
	perfPath := filepath.Join(cfg.OutputDir, "PeriodPerformance.csv")
	if err := writePerformance(perf, perfPath); err != nil {
		appLogger.Error(ctx, err, "Failed to write period performance export")
		os.Exit(1)
	}
	appLogger.Info(ctx, "Period performance export written", map[string]interface{}{
		"path":   perfPath,
		"period": string(cfg.PeriodType),
	})

	// 7. Optional trade archive snapshot
	if cfg.ArchiveTrade {
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize trade archive")
			log.Fatalf("FATAL: Failed to initialize trade archive: %v", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				appLogger.Error(ctx, err, "Error closing trade archive")
			}
		}()
		if err := repo.ReplaceAll(ctx, ledger.Trades()); err != nil {
			appLogger.Error(ctx, err, "Failed to archive trades")
			os.Exit(1)
		}
		appLogger.Info(ctx, "Trades archived", map[string]interface{}{"trades": ledger.Len()})
	}
}

func writeTradeDetails(ledger *domain.Ledger, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer file.Close()
	return render.WriteTradeDetails(file, ledger.Trades())
}

func writePerformance(perf *report.PeriodPerformance, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer file.Close()
	return render.WritePerformance(file, perf.Rows())
}
