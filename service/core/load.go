package core

import (
	"fmt"

	"go.uber.org/zap"

	f "cryptoforecast/data/files"
	m "cryptoforecast/data/models"
)

// Load writes every table to its csv file and replaces its database table.
// The first error stops the load; tables already written stay written.
func (sc *ServiceContext) Load(store PriceStore, tables []*m.PriceTable) error {
	sc.Logger.Info("Loading data...")
	writer := f.NewPriceCSVWriter(sc.OutputDir)

	for _, table := range tables {
		path, err := writer.WritePriceTable(table)
		if err != nil {
			return fmt.Errorf("error saving csv for %s: %w", table.Symbol, err)
		}
		sc.Logger.Info("Data saved", zap.String("symbol", table.Symbol), zap.String("path", path))

		ct, err := store.ReplacePriceTable(sc.Context, table)
		if err != nil {
			return fmt.Errorf("error saving table for %s: %w", table.Symbol, err)
		}
		sc.Logger.Info("Table created in the database", zap.String("table", table.TableName()), zap.Int64("rows", ct))
	}

	sc.Logger.Info("Data loaded successfully")
	return nil
}
