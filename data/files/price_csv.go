package files

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	m "cryptoforecast/data/models"
)

// TimestampLayout drops trailing zero fractions, whole-second rows read as "2025-10-31 00:00:00".
const TimestampLayout = "2006-01-02 15:04:05.999"

var header = []string{"timestamp", "price"}

type PriceCSVWriter struct {
	basePath string
}

func NewPriceCSVWriter(basePath string) *PriceCSVWriter {
	return &PriceCSVWriter{
		basePath: basePath,
	}
}

// PathFor is where the table for symbol lands, {base}/{SYMBOL}_data.csv
func (w *PriceCSVWriter) PathFor(symbol string) string {
	return filepath.Join(w.basePath, fmt.Sprintf("%s_data.csv", symbol))
}

// WritePriceTable overwrites the symbol's csv with the table's timestamp and price columns.
func (w *PriceCSVWriter) WritePriceTable(table *m.PriceTable) (string, error) {
	if err := os.MkdirAll(w.basePath, 0o755); err != nil {
		return "", fmt.Errorf("error creating directory %s: %w", w.basePath, err)
	}

	path := w.PathFor(table.Symbol)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating csv file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("error writing csv header: %w", err)
	}

	for _, r := range table.Rows {
		row := []string{
			r.Timestamp.Format(TimestampLayout),
			strconv.FormatFloat(r.Price, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("error writing csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing csv file %s: %w", path, err)
	}

	return path, file.Close()
}

// ReadPriceTable parses a file written by WritePriceTable.
func ReadPriceTable(path string) ([]m.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening csv file %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %s has no header", path)
	}

	res := make([]m.PricePoint, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+1, len(record), len(header))
		}

		ts, err := time.Parse(TimestampLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("error parsing timestamp on row %d: %w", i+1, err)
		}

		price, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing price on row %d: %w", i+1, err)
		}

		res = append(res, m.PricePoint{Timestamp: ts, Price: price})
	}

	return res, nil
}
