package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tradeTools/config"
	"tradeTools/internal/adapters/binanceclient"
	"tradeTools/internal/adapters/logger"
	"tradeTools/internal/utils"
)

// Download one calendar year of historical klines for every symbol in the
// symbols file, one CSV per symbol, optionally combined into a single
// sorted file.
func main() {
	combine := flag.Bool("c", false, "combine all downloaded data into one file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	client, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	symbols, err := utils.ReadSymbols(cfg.SymbolsFile)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to read symbols file")
		log.Fatalf("FATAL: Failed to read symbols file: %v", err)
	}

	outDir := filepath.Join(cfg.OutputDir, "klines", cfg.KlineInterval)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("FATAL: Failed to create output directory: %v", err)
	}

	start := time.Date(cfg.KlineYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var written []string
	for _, symbol := range symbols {
		appLogger.Info(ctx, "Fetching klines", map[string]interface{}{
			"symbol":   symbol,
			"interval": cfg.KlineInterval,
			"year":     cfg.KlineYear,
		})
		klines, err := client.GetKlinesRange(ctx, symbol, cfg.KlineInterval, start, end)
		if err != nil {
			appLogger.Error(ctx, err, "Skipping symbol, kline fetch failed", map[string]interface{}{"symbol": symbol})
			continue
		}
		if len(klines) == 0 {
			appLogger.Warn(ctx, "No kline data for symbol", map[string]interface{}{"symbol": symbol})
			continue
		}

		filename := filepath.Join(outDir, fmt.Sprintf("%d_%s.csv", cfg.KlineYear, symbol))
		if err := utils.WriteKlinesToCSV(klines, filename); err != nil {
			appLogger.Error(ctx, err, "Failed to write kline CSV", map[string]interface{}{"symbol": symbol})
			continue
		}
		appLogger.Info(ctx, "Saved klines", map[string]interface{}{"filename": filename, "count": len(klines)})
		written = append(written, filename)
	}

	if *combine && len(written) > 0 {
		combined := filepath.Join(outDir, "combined.csv")
		if err := utils.CombineKlineCSVs(written, combined); err != nil {
			appLogger.Error(ctx, err, "Failed to combine kline CSVs")
			os.Exit(1)
		}
		appLogger.Info(ctx, "Combined kline data written", map[string]interface{}{"filename": combined})
	}
}
