package core

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	m "cryptoforecast/data/models"
)

// Forecast fits one line per table, renders the combined chart and returns the fitted models
// with their 365 day projections. Tables too short to fit are logged and left off the chart.
func (sc *ServiceContext) Forecast(tables []*m.PriceTable) ([]*m.ForecastResult, error) {
	sc.Logger.Info("Predicting prices...")

	res := make([]*m.ForecastResult, 0, len(tables))
	plotted := make([]*m.PriceTable, 0, len(tables))
	for _, table := range tables {
		SetDayOffsets(table)

		fr, err := FitForecast(table)
		if err != nil {
			sc.Logger.Warn("Skipping forecast", zap.String("symbol", table.Symbol), zap.Error(err))
			continue
		}

		last := fr.Future[len(fr.Future)-1]
		sc.Logger.Info("Regression fitted",
			zap.String("symbol", fr.Symbol),
			zap.Float64("slope", fr.Model.Slope),
			zap.Float64("intercept", fr.Model.Intercept),
			zap.Int("train", fr.TrainSize),
			zap.Int("test", fr.TestSize),
			zap.Int("forecast_day", last.DayOffset),
			zap.Float64("forecast_price", last.Price),
		)

		res = append(res, fr)
		plotted = append(plotted, table)
	}

	if len(plotted) == 0 {
		sc.Logger.Warn("No regression could be fitted, plot not rendered")
		return res, nil
	}

	path := filepath.Join(sc.OutputDir, PlotFileName)
	if err := RenderForecastPlot(plotted, path); err != nil {
		return nil, fmt.Errorf("error rendering forecast plot: %w", err)
	}
	sc.Logger.Info("Plot saved", zap.String("path", path))

	if sc.OpenPlot != nil {
		if err := sc.OpenPlot(path); err != nil {
			sc.Logger.Warn("Unable to display plot", zap.String("path", path), zap.Error(err))
		}
	}

	return res, nil
}
