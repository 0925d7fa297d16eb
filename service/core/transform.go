package core

import (
	"maps"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	ex "cryptoforecast/data/extensions"
	f "cryptoforecast/data/files"
	m "cryptoforecast/data/models"
)

const previewRows = 5

// Transform builds one table per symbol, ordered by symbol. Row count and order match the input exactly.
func (sc *ServiceContext) Transform(data map[string][]m.RawPrice) []*m.PriceTable {
	sc.Logger.Info("Transforming data...")

	res := make([]*m.PriceTable, 0, len(data))
	for _, symbol := range slices.Sorted(maps.Keys(data)) {
		table := TransformSeries(symbol, data[symbol])
		sc.logPreview(table)
		res = append(res, table)
	}

	sc.Logger.Info("Data transformed successfully", zap.Int("tables", len(res)))
	return res
}

// TransformSeries converts epoch milliseconds to UTC timestamps, no other cleaning.
func TransformSeries(symbol string, raw []m.RawPrice) *m.PriceTable {
	rows := make([]*m.PriceRow, len(raw))
	for i, rp := range raw {
		rows[i] = &m.PriceRow{
			PricePoint: m.PricePoint{
				Timestamp: time.UnixMilli(rp.EpochMillis()).UTC(),
				Price:     rp.Price(),
			},
		}
	}

	return &m.PriceTable{
		Symbol: symbol,
		Rows:   rows,
	}
}

func (sc *ServiceContext) logPreview(table *m.PriceTable) {
	preview := ex.Map(ex.Head(table.Rows, previewRows), func(r *m.PriceRow) string {
		return r.Timestamp.Format(f.TimestampLayout) + " " + strconv.FormatFloat(r.Price, 'f', -1, 64)
	})
	sc.Logger.Info("Data preview", zap.String("symbol", table.Symbol), zap.Int("rows", len(table.Rows)), zap.Strings("head", preview))
}
