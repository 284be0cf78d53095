package domain

import "time"

// Trade represents one round trip (or still-open position) from the
// OrderClerk trade log. Values are immutable once constructed; any
// mark-to-market substitution happens at the ingestion boundary before
// the Trade is built.
type Trade struct {
	Side     int     // +1 long, -1 short; direction multiplier for all P&L math
	Symbol   string  // Instrument identifier (opaque)
	Shares   float64 // Nominal position size at entry
	DateIn   time.Time
	QtyIn    float64 // Filled quantity on the entry leg (zero if not filled)
	PriceIn  float64
	FeesIn   float64
	Currency string     // Selects the price-lookup venue only, never converted
	DateOut  *time.Time // nil while the position is still open
	QtyOut   float64    // Filled quantity on the exit leg (zero if no exit)
	PriceOut float64    // May be a substituted mark price for open positions
	FeesOut  float64
	M2MPrice float64 // Supplemental mark-to-market snapshot, independent of PriceOut
	Strategy string
}

// IsLong reports whether the trade is a long position.
func (t *Trade) IsLong() bool {
	return t.Side == SideLong
}

// IsShort reports whether the trade is a short position.
func (t *Trade) IsShort() bool {
	return t.Side == SideShort
}

// IsRealized reports whether both legs have filled quantity.
// The test is quantity-based on purpose: a trade carrying an exit date but
// zero recorded exit quantity still counts as unrealized.
func (t *Trade) IsRealized() bool {
	return t.QtyIn > 0 && t.QtyOut > 0
}

// UsedCapital is the capital committed at entry, signed by trade direction.
func (t *Trade) UsedCapital() float64 {
	return float64(t.Side) * t.QtyIn * t.PriceIn
}

// EntryValue is the unsigned entry-leg value (quantity times entry price).
// Period performance reporting accumulates this form rather than the
// signed UsedCapital.
func (t *Trade) EntryValue() float64 {
	return t.QtyIn * t.PriceIn
}

// TotalFees is the sum of transaction costs on both legs.
func (t *Trade) TotalFees() float64 {
	return t.FeesIn + t.FeesOut
}

// GrossProfitLoss is the direction-adjusted difference between the exit and
// entry leg values. Zero for unrealized trades.
func (t *Trade) GrossProfitLoss() float64 {
	if !t.IsRealized() {
		return 0
	}
	return float64(t.Side) * ((t.QtyOut * t.PriceOut) - (t.QtyIn * t.PriceIn))
}

// NetProfitLoss is GrossProfitLoss less total fees. Zero for unrealized trades.
func (t *Trade) NetProfitLoss() float64 {
	if !t.IsRealized() {
		return 0
	}
	return t.GrossProfitLoss() - t.TotalFees()
}
