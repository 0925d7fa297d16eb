package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/guregu/null/v6"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	m "cryptoforecast/data/models"
)

const (
	TestFraction = 0.2
	SplitSeed    = 42
	ForecastDays = 365
)

var errNotEnoughPoints = errors.New("not enough points to fit a regression line")

// SetDayOffsets fills DayOffset with whole days since the table's earliest timestamp, truncated.
func SetDayOffsets(table *m.PriceTable) {
	if len(table.Rows) == 0 {
		return
	}

	earliest := table.Rows[0].Timestamp
	for _, r := range table.Rows[1:] {
		if r.Timestamp.Before(earliest) {
			earliest = r.Timestamp
		}
	}

	for _, r := range table.Rows {
		r.DayOffset = null.IntFrom(int64(r.Timestamp.Sub(earliest) / (24 * time.Hour)))
	}
}

// TrainTestSplit shuffles row indexes with a fixed seed and holds out ceil(n*testFraction) of them.
func TrainTestSplit(n int, testFraction float64, seed uint64) (train, test []int) {
	nTest := int(math.Ceil(float64(n) * testFraction))
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	return perm[nTest:], perm[:nTest]
}

// FitLinearRegression is an ordinary least squares fit of y on x.
func FitLinearRegression(x, y []float64) (m.RegressionModel, error) {
	if len(x) != len(y) {
		return m.RegressionModel{}, fmt.Errorf("error fitting regression, %d x values and %d y values", len(x), len(y))
	}
	if len(x) < 2 || floats.Min(x) == floats.Max(x) {
		return m.RegressionModel{}, errNotEnoughPoints
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return m.RegressionModel{Slope: beta, Intercept: alpha}, nil
}

// FitForecast fits on the training split of the table and fills PredictedPrice on every row,
// held out rows included. Day offsets must already be set.
func FitForecast(table *m.PriceTable) (*m.ForecastResult, error) {
	train, test := TrainTestSplit(len(table.Rows), TestFraction, SplitSeed)

	x := make([]float64, len(train))
	y := make([]float64, len(train))
	for i, idx := range train {
		x[i] = float64(table.Rows[idx].DayOffset.Int64)
		y[i] = table.Rows[idx].Price
	}

	model, err := FitLinearRegression(x, y)
	if err != nil {
		return nil, fmt.Errorf("error fitting %s: %w", table.Symbol, err)
	}

	for _, r := range table.Rows {
		r.PredictedPrice = null.FloatFrom(model.Predict(float64(r.DayOffset.Int64)))
	}

	// days 1..365 from the start of the series, not from its end
	future := make([]m.ForecastPoint, ForecastDays)
	for i := range future {
		day := i + 1
		future[i] = m.ForecastPoint{DayOffset: day, Price: model.Predict(float64(day))}
	}

	return &m.ForecastResult{
		Symbol:    table.Symbol,
		Model:     model,
		TrainSize: len(train),
		TestSize:  len(test),
		Future:    future,
	}, nil
}
