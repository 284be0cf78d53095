package domain

// Ledger holds the full trade history loaded for one report run, in
// insertion order. It owns its trades exclusively; the realized and
// unrealized views are filtered fresh on every call since a ledger is
// one user's history and is queried once per run.
type Ledger struct {
	trades []Trade
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddTrade appends a trade. No validation happens here; the ingestion
// boundary only hands over well-formed trades.
func (l *Ledger) AddTrade(t Trade) {
	l.trades = append(l.trades, t)
}

// Len returns the number of trades held.
func (l *Ledger) Len() int {
	return len(l.trades)
}

// Trades returns all trades in insertion order.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// RealizedTrades returns the subsequence of trades with filled entry and
// exit quantities, in insertion order.
func (l *Ledger) RealizedTrades() []Trade {
	var out []Trade
	for _, t := range l.trades {
		if t.IsRealized() {
			out = append(out, t)
		}
	}
	return out
}

// UnrealizedTrades returns the complementary subsequence.
func (l *Ledger) UnrealizedTrades() []Trade {
	var out []Trade
	for _, t := range l.trades {
		if !t.IsRealized() {
			out = append(out, t)
		}
	}
	return out
}
