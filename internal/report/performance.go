package report

import (
	"fmt"
	"sort"
	"time"

	"tradeTools/internal/domain"
)

// PeriodType selects the calendar bucketing for period performance.
type PeriodType string

const (
	PeriodDay   PeriodType = "Day"
	PeriodWeek  PeriodType = "Week"
	PeriodMonth PeriodType = "Month"
)

// ParsePeriodType converts a config string to a PeriodType.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return PeriodType(s), nil
	}
	return "", fmt.Errorf("unknown period type %q (want Day, Week or Month)", s)
}

// PerformanceRow is one (period, strategy) aggregation result.
type PerformanceRow struct {
	Date        string // Period key, e.g. "2023-01", "2023-W2", "2023-01-10"
	Strategy    string
	PeriodType  string
	NetPnL      float64
	UsedCapital float64
}

// RealizedSource yields the realized trades to aggregate. A *domain.Ledger
// satisfies it.
type RealizedSource interface {
	RealizedTrades() []domain.Trade
}

type bucket struct {
	netPnL      float64
	usedCapital float64
}

// PeriodPerformance groups realized trades into (period, strategy) buckets,
// summing net P&L and used capital per bucket. It is a one-shot transform:
// stats are computed at construction and never updated afterwards.
//
// UsedCapital accumulates the unsigned entry value (quantity times entry
// price), not the Trade's signed UsedCapital. That is the reporting rule
// carried over from the original statement output.
type PeriodPerformance struct {
	periodType PeriodType
	stats      map[string]map[string]*bucket
}

// NewPeriodPerformance aggregates the source's realized trades under the
// given period type.
func NewPeriodPerformance(src RealizedSource, periodType PeriodType) *PeriodPerformance {
	p := &PeriodPerformance{
		periodType: periodType,
		stats:      make(map[string]map[string]*bucket),
	}
	for _, t := range src.RealizedTrades() {
		var exit time.Time
		if t.DateOut != nil {
			exit = *t.DateOut
		}
		key := PeriodKey(exit, periodType)
		strategies, ok := p.stats[key]
		if !ok {
			strategies = make(map[string]*bucket)
			p.stats[key] = strategies
		}
		b, ok := strategies[t.Strategy]
		if !ok {
			b = &bucket{}
			strategies[t.Strategy] = b
		}
		b.netPnL += t.NetProfitLoss()
		b.usedCapital += t.EntryValue()
	}
	return p
}

// PeriodKey derives the bucket key for an exit date.
// Week keys use the ISO week number unpadded ("2023-W2", not "2023-W02"),
// so lexicographic order of week keys is not strictly chronological once
// week numbers reach double digits. That quirk is part of the report format.
func PeriodKey(t time.Time, periodType PeriodType) string {
	switch periodType {
	case PeriodDay:
		return t.Format("2006-01-02")
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%d", year, week)
	default:
		return t.Format("2006-01")
	}
}

// Rows flattens the grouped stats into a slice sorted by period key
// (lexicographic), then by strategy label within each period.
func (p *PeriodPerformance) Rows() []PerformanceRow {
	periods := make([]string, 0, len(p.stats))
	for key := range p.stats {
		periods = append(periods, key)
	}
	sort.Strings(periods)

	var rows []PerformanceRow
	for _, period := range periods {
		strategies := make([]string, 0, len(p.stats[period]))
		for s := range p.stats[period] {
			strategies = append(strategies, s)
		}
		sort.Strings(strategies)

		for _, strategy := range strategies {
			b := p.stats[period][strategy]
			rows = append(rows, PerformanceRow{
				Date:        period,
				Strategy:    strategy,
				PeriodType:  string(p.periodType),
				NetPnL:      b.netPnL,
				UsedCapital: b.usedCapital,
			})
		}
	}
	return rows
}
