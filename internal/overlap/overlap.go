// Package overlap measures how much instrument watchlists overlap with a
// benchmark universe.
package overlap

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// WatchlistSource enumerates named symbol lists.
type WatchlistSource interface {
	// Watchlists returns the available watchlist names.
	Watchlists(ctx context.Context) ([]string, error)
	// Symbols returns the instrument symbols in the named watchlist.
	Symbols(ctx context.Context, watchlist string) ([]string, error)
}

// Result is the overlap of one watchlist against the benchmark.
type Result struct {
	Percent   float64
	Watchlist string
}

// Overlapping returns the sorted intersection of two symbol lists.
func Overlapping(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range b {
		if inA[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// PercentOverlap returns the share of this list's symbols that also appear
// in that list, as a percentage.
func PercentOverlap(this, that []string) float64 {
	if len(this) == 0 {
		return 0
	}
	return float64(len(Overlapping(this, that))) / float64(len(this)) * 100
}

// RankAgainst computes the overlap of every watchlist against the benchmark
// watchlist, sorted ascending by percentage. The benchmark itself and
// historical "Current & Past" lists are skipped.
func RankAgainst(ctx context.Context, src WatchlistSource, benchmark string) ([]Result, error) {
	benchmarkSymbols, err := src.Symbols(ctx, benchmark)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmark watchlist %q: %w", benchmark, err)
	}

	names, err := src.Watchlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate watchlists: %w", err)
	}

	var results []Result
	for _, name := range names {
		if name == benchmark || strings.Contains(name, "Current & Past") {
			continue
		}
		symbols, err := src.Symbols(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load watchlist %q: %w", name, err)
		}
		results = append(results, Result{
			Percent:   PercentOverlap(symbols, benchmarkSymbols),
			Watchlist: name,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Percent != results[j].Percent {
			return results[i].Percent < results[j].Percent
		}
		return results[i].Watchlist < results[j].Watchlist
	})
	return results, nil
}
