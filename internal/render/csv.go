// Package render formats ledger and report output as CSV rows and console
// tables. It does no arithmetic of its own beyond the unrealized summary;
// all financial derivations come from the domain and report packages.
package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"tradeTools/internal/domain"
	"tradeTools/internal/report"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// TradeDetailsHeader returns the column headers of the trade details export.
func TradeDetailsHeader() []string {
	return []string{
		"Side",
		"Symbol",
		"Shares",

		"DateIn",
		"QtyIn",
		"PriceIn",
		"FeesIn",

		"Currency",

		"DateOut",
		"QtyOut",
		"PriceOut",
		"FeesOut",

		"M2MPrice",
		"UsedCapital",

		"TotalFees",
		"GrossProfitLoss",
		"NetProfitLoss",
		"Strategy",
		"IsRealized",
	}
}

// TradeDetailsRow renders one trade as an export row. Open positions render
// an empty exit date rather than a sentinel value.
func TradeDetailsRow(t domain.Trade) []string {
	dateOut := ""
	if t.DateOut != nil {
		dateOut = t.DateOut.Format(dateTimeLayout)
	}

	return []string{
		strconv.Itoa(t.Side),
		t.Symbol,
		formatFloat(t.Shares),

		t.DateIn.Format(dateTimeLayout),
		formatFloat(t.QtyIn),
		formatFloat(t.PriceIn),
		formatFloat(t.FeesIn),

		t.Currency,

		dateOut,
		formatFloat(t.QtyOut),
		formatFloat(t.PriceOut),
		formatFloat(t.FeesOut),

		formatFloat(t.M2MPrice),
		formatFloat(t.UsedCapital()),

		formatFloat(t.TotalFees()),
		formatFloat(t.GrossProfitLoss()),
		formatFloat(t.NetProfitLoss()),
		t.Strategy,
		strconv.FormatBool(t.IsRealized()),
	}
}

// WriteTradeDetails writes the full trade details export to w.
func WriteTradeDetails(w io.Writer, trades []domain.Trade) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TradeDetailsHeader()); err != nil {
		return err
	}
	for _, t := range trades {
		if err := writer.Write(TradeDetailsRow(t)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// PerformanceHeader returns the column headers of the period performance export.
func PerformanceHeader() []string {
	return []string{"Date", "Strategy", "PeriodType", "NetPnL", "UsedCapital"}
}

// PerformanceRow renders one aggregation bucket as an export row.
func PerformanceRow(r report.PerformanceRow) []string {
	return []string{
		r.Date,
		r.Strategy,
		r.PeriodType,
		formatFloat(r.NetPnL),
		formatFloat(r.UsedCapital),
	}
}

// WritePerformance writes the period performance export to w.
func WritePerformance(w io.Writer, rows []report.PerformanceRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(PerformanceHeader()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(PerformanceRow(r)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
