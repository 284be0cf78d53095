package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"tradeTools/internal/domain"
)

// WriteKlinesToCSV saves downloaded klines into a CSV file.
func WriteKlinesToCSV(klines []*domain.Kline, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"open_time", "close_time", "symbol", "interval", "open", "high", "low", "close", "volume"})

	for _, k := range klines {
		writer.Write([]string{
			k.OpenTime.Format(time.RFC3339),
			k.CloseTime.Format(time.RFC3339),
			k.Symbol,
			k.Interval,
			strconv.FormatFloat(k.Open, 'f', -1, 64),
			strconv.FormatFloat(k.High, 'f', -1, 64),
			strconv.FormatFloat(k.Low, 'f', -1, 64),
			strconv.FormatFloat(k.Close, 'f', -1, 64),
			strconv.FormatFloat(k.Volume, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// ReadSymbols reads a symbols file, one symbol per line, skipping blanks
// and lines starting with '#'.
func ReadSymbols(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file '%s': %w", filename, err)
	}
	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	return symbols, nil
}

// CombineKlineCSVs merges several kline CSV files into one, sorted by open
// time. All inputs must share the header layout written by WriteKlinesToCSV;
// RFC3339 open times sort chronologically as strings.
func CombineKlineCSVs(inputs []string, output string) error {
	var header []string
	var rows [][]string

	for _, input := range inputs {
		file, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open kline CSV '%s': %w", input, err)
		}
		records, err := csv.NewReader(file).ReadAll()
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to read kline CSV '%s': %w", input, err)
		}
		if len(records) == 0 {
			continue
		}
		header = records[0]
		rows = append(rows, records[1:]...)
	}

	if header == nil {
		return fmt.Errorf("no kline data found in %d input files", len(inputs))
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create combined CSV '%s': %w", output, err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
