package core

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	m "cryptoforecast/data/models"
)

// Extract pulls the trailing year of prices for every configured asset.
// A failed asset is logged and left out of the result, it never fails the run.
func (sc *ServiceContext) Extract() map[string][]m.RawPrice {
	prices := make([][]m.RawPrice, len(sc.Assets))
	fetched := make([]bool, len(sc.Assets))

	// each goroutine owns its own index, no locking needed
	var g errgroup.Group
	for i, asset := range sc.Assets {
		g.Go(func() error {
			sc.Logger.Info("Extracting historical data", zap.String("symbol", asset.Symbol))

			res, err := sc.MarketData.GetMarketChart(sc.Context, asset)
			if err != nil {
				sc.Logger.Warn("Error getting data, skipping asset", zap.String("symbol", asset.Symbol), zap.Error(err))
				return nil
			}

			prices[i] = res
			fetched[i] = true
			sc.Logger.Info("Data extracted successfully", zap.String("symbol", asset.Symbol), zap.Int("points", len(res)))
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	res := make(map[string][]m.RawPrice, len(sc.Assets))
	for i, asset := range sc.Assets {
		if fetched[i] {
			res[asset.Symbol] = prices[i]
		}
	}

	return res
}
