package main

import (
	"context"
	"fmt"
	"log"

	"tradeTools/config"
	"tradeTools/internal/adapters/logger"
	"tradeTools/internal/overlap"
)

// Print the overlap of every watchlist against the benchmark universe,
// least overlapping first.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	src := overlap.NewDirSource(cfg.WatchlistDir)
	results, err := overlap.RankAgainst(ctx, src, cfg.BenchmarkWatchlist)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to compute watchlist overlaps")
		log.Fatalf("FATAL: Failed to compute watchlist overlaps: %v", err)
	}

	for _, r := range results {
		fmt.Printf("%6.2f%% - %s\n", r.Percent, r.Watchlist)
	}
}
