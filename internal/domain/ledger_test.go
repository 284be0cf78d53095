package domain

import "testing"

func realized(symbol, strategy string) Trade {
	return Trade{
		Side:     SideLong,
		Symbol:   symbol,
		QtyIn:    10,
		PriceIn:  100.0,
		DateOut:  date("2023-01-10"),
		QtyOut:   10,
		PriceOut: 110.0,
		Strategy: strategy,
	}
}

func unrealized(symbol, strategy string) Trade {
	return Trade{
		Side:     SideLong,
		Symbol:   symbol,
		QtyIn:    10,
		PriceIn:  100.0,
		Strategy: strategy,
	}
}

func TestLedgerPartitionsByRealization(t *testing.T) {
	ledger := NewLedger()
	ledger.AddTrade(realized("AAPL", "Apple"))
	ledger.AddTrade(unrealized("MSFT", "Long"))
	ledger.AddTrade(realized("GOOGL", "Google"))

	if ledger.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ledger.Len())
	}

	r := ledger.RealizedTrades()
	if len(r) != 2 {
		t.Fatalf("expected 2 realized trades, got %d", len(r))
	}
	// Insertion order is preserved within each view.
	if r[0].Symbol != "AAPL" || r[1].Symbol != "GOOGL" {
		t.Errorf("realized trades out of order: %s, %s", r[0].Symbol, r[1].Symbol)
	}

	u := ledger.UnrealizedTrades()
	if len(u) != 1 || u[0].Symbol != "MSFT" {
		t.Errorf("unexpected unrealized trades: %v", u)
	}
}

func TestLedgerViewsAreIdempotent(t *testing.T) {
	ledger := NewLedger()
	ledger.AddTrade(realized("AAPL", "Apple"))
	ledger.AddTrade(unrealized("MSFT", "Long"))

	first := ledger.RealizedTrades()
	second := ledger.RealizedTrades()
	if len(first) != len(second) {
		t.Fatalf("realized view changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("realized trade %d differs between calls", i)
		}
	}
}

func TestEmptyLedger(t *testing.T) {
	ledger := NewLedger()
	if got := ledger.RealizedTrades(); len(got) != 0 {
		t.Errorf("expected no realized trades, got %d", len(got))
	}
	if got := ledger.UnrealizedTrades(); len(got) != 0 {
		t.Errorf("expected no unrealized trades, got %d", len(got))
	}
}
