package main

import (
	"context"
	"fmt"
	"log"

	"tradeTools/config"
	"tradeTools/internal/adapters/binanceclient"
	"tradeTools/internal/adapters/csvloader"
	"tradeTools/internal/adapters/logger"
	"tradeTools/internal/adapters/markprice"
	"tradeTools/internal/domain"
	"tradeTools/internal/web"
)

// fileLoader adapts the CSV loader to the web server's per-request reload.
type fileLoader struct {
	loader *csvloader.Loader
	path   string
}

func (f *fileLoader) Load(ctx context.Context) (*domain.Ledger, error) {
	return f.loader.Load(ctx, f.path)
}

// Serve the OrderClerk trade list and the period performance report as CSV
// downloads.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	exchange, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	quotes, err := markprice.New(markprice.Config{Exchange: exchange, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize mark price source: %v", err)
	}
	loader, err := csvloader.New(csvloader.Config{Logger: appLogger, Quotes: quotes})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize trade loader: %v", err)
	}

	server, err := web.NewServer(web.Config{
		Addr:          fmt.Sprintf(":%d", cfg.ServerPort),
		Loader:        &fileLoader{loader: loader, path: cfg.TradesPath()},
		DefaultPeriod: cfg.PeriodType,
		Logger:        appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize report server: %v", err)
	}

	if err := server.Start(); err != nil {
		appLogger.Error(ctx, err, "Report server stopped")
		log.Fatalf("FATAL: Report server stopped: %v", err)
	}
}
