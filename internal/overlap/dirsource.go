package overlap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirSource is a WatchlistSource backed by a directory of .txt files, one
// watchlist per file, one symbol per line. The watchlist name is the file
// name without extension.
type DirSource struct {
	dir string
}

// NewDirSource creates a directory-backed watchlist source.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Watchlists returns the available watchlist names, sorted.
func (d *DirSource) Watchlists(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist directory '%s': %w", d.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

// Symbols returns the symbols in the named watchlist, one per line, with
// blank lines skipped.
func (d *DirSource) Symbols(ctx context.Context, watchlist string) ([]string, error) {
	path := filepath.Join(d.dir, watchlist+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist file '%s': %w", path, err)
	}
	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		symbols = append(symbols, line)
	}
	return symbols, nil
}
