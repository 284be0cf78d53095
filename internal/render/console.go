package render

import (
	"fmt"
	"io"
	"strings"

	"tradeTools/internal/domain"
)

// RealizedTradesTable writes a width-aligned table of realized trades.
// Numeric columns are right-aligned; capital used here includes entry fees,
// matching the original statement layout.
func RealizedTradesTable(w io.Writer, trades []domain.Trade) {
	rows := [][]string{{
		"Symbol", "DateIn", "PriceIn", "QtyIn", "DateOut", "PriceOut", "QtyOut",
		"FeesIn", "FeesOut", "Capital Used", "Profit", "Currency",
	}}
	numeric := map[int]bool{2: true, 3: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true}

	for _, t := range trades {
		usedCapital := (t.PriceIn * t.QtyIn) + t.FeesIn
		dateOut := ""
		if t.DateOut != nil {
			dateOut = t.DateOut.Format("2006-01-02")
		}
		rows = append(rows, []string{
			t.Symbol,
			t.DateIn.Format("2006-01-02"),
			fmt.Sprintf("%.2f", t.PriceIn),
			fmt.Sprintf("%.0f", t.QtyIn),
			dateOut,
			fmt.Sprintf("%.2f", t.PriceOut),
			fmt.Sprintf("%.0f", t.QtyOut),
			fmt.Sprintf("%.2f", t.FeesIn),
			fmt.Sprintf("%.2f", t.FeesOut),
			fmt.Sprintf("$%.2f", usedCapital),
			fmt.Sprintf("$%.2f", t.NetProfitLoss()),
			t.Currency,
		})
	}

	writeTable(w, rows, numeric)
}

// UnrealizedTradesTable writes a per-(strategy, symbol) summary of open
// positions: mark-to-market profit, cost basis and profit percentage, with
// a totals row.
func UnrealizedTradesTable(w io.Writer, trades []domain.Trade) {
	rows := [][]string{{"Strategy", "Symbol", "Profit/Loss", "Cost Basis", "MTM Profit %"}}
	numeric := map[int]bool{2: true, 3: true, 4: true}

	type key struct{ strategy, symbol string }
	var order []key
	capital := make(map[key]float64)
	profit := make(map[key]float64)

	for _, t := range trades {
		k := key{t.Strategy, t.Symbol}
		if _, seen := capital[k]; !seen {
			order = append(order, k)
		}
		capital[k] += (t.QtyIn * t.PriceIn) + t.FeesIn
		profit[k] += float64(t.Side) * t.QtyIn * (t.M2MPrice - t.PriceIn)
	}

	var totalProfit, totalCapital float64
	for _, k := range order {
		pct := 0.0
		if capital[k] != 0 {
			pct = profit[k] / capital[k] * 100
		}
		rows = append(rows, []string{
			k.strategy,
			k.symbol,
			fmt.Sprintf("$%.2f", profit[k]),
			fmt.Sprintf("$%.2f", capital[k]),
			fmt.Sprintf("%.2f%%", pct),
		})
		totalProfit += profit[k]
		totalCapital += capital[k]
	}

	rows = append(rows, []string{
		"Totals",
		"",
		fmt.Sprintf("$%.2f", totalProfit),
		fmt.Sprintf("$%.2f", totalCapital),
		"",
	})

	writeTable(w, rows, numeric)
}

// writeTable prints rows with columns padded to the widest cell. The first
// row is the header.
func writeTable(w io.Writer, rows [][]string, numeric map[int]bool) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for r, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if r > 0 && numeric[i] {
				sb.WriteString(pad(cell, widths[i], true))
			} else {
				sb.WriteString(pad(cell, widths[i], false))
			}
			sb.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}

func pad(s string, width int, right bool) string {
	if len(s) >= width {
		return s
	}
	padding := strings.Repeat(" ", width-len(s))
	if right {
		return padding + s
	}
	return s + padding
}
