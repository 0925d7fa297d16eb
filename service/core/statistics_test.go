package core

import (
	"slices"
	"testing"
	"time"

	ex "cryptoforecast/data/extensions"
	m "cryptoforecast/data/models"
)

func TestFitForecastRecoversLinearSeries(t *testing.T) {
	table := TransformSeries("BTC", linearSeries(10, 100, 2))
	SetDayOffsets(table)

	fr, err := FitForecast(table)
	if err != nil {
		t.Fatalf("error fitting forecast: %v", err)
	}

	ex.AssertInDelta(t, "slope", 2, fr.Model.Slope, 1e-9)
	ex.AssertInDelta(t, "intercept", 100, fr.Model.Intercept, 1e-9)
	ex.AssertAreEqual(t, "train size", 8, fr.TrainSize)
	ex.AssertAreEqual(t, "test size", 2, fr.TestSize)

	// in sample predictions cover held out rows too
	for i, r := range table.Rows {
		if !r.PredictedPrice.Valid {
			t.Fatalf("row %d has no prediction", i)
		}
		ex.AssertInDelta(t, "prediction", r.Price, r.PredictedPrice.Float64, 1e-9)
	}

	ex.AssertAreEqual(t, "forecast length", ForecastDays, len(fr.Future))
	ex.AssertAreEqual(t, "first forecast day", 1, fr.Future[0].DayOffset)
	ex.AssertAreEqual(t, "last forecast day", 365, fr.Future[364].DayOffset)
	ex.AssertInDelta(t, "last forecast price", 830, fr.Future[364].Price, 1e-6)
}

func TestFitForecastRejectsTooFewPoints(t *testing.T) {
	table := TransformSeries("ADA", linearSeries(2, 1, 1))
	SetDayOffsets(table)

	// ceil(0.4) holds one of two points out, a single point cannot define a line
	if _, err := FitForecast(table); err == nil {
		t.Fatalf("expected error fitting two points")
	}
}

func TestSetDayOffsetsUsesEarliestAndTruncates(t *testing.T) {
	base := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	table := &m.PriceTable{Symbol: "ETH", Rows: []*m.PriceRow{
		{PricePoint: m.PricePoint{Timestamp: base.Add(36 * time.Hour)}},
		{PricePoint: m.PricePoint{Timestamp: base}},
		{PricePoint: m.PricePoint{Timestamp: base.Add(71*time.Hour + 59*time.Minute)}},
	}}

	SetDayOffsets(table)

	ex.AssertAreEqual(t, "row 0", int64(1), table.Rows[0].DayOffset.Int64)
	ex.AssertAreEqual(t, "row 1", int64(0), table.Rows[1].DayOffset.Int64)
	ex.AssertAreEqual(t, "row 2", int64(2), table.Rows[2].DayOffset.Int64)
}

func TestTrainTestSplitIsReproducibleAndDisjoint(t *testing.T) {
	train, test := TrainTestSplit(366, TestFraction, SplitSeed)
	train2, test2 := TrainTestSplit(366, TestFraction, SplitSeed)

	ex.AssertAreEqual(t, "test size", 74, len(test))
	ex.AssertAreEqual(t, "train size", 292, len(train))
	if !slices.Equal(train, train2) || !slices.Equal(test, test2) {
		t.Fatalf("split differs between calls with the same seed")
	}

	all := slices.Concat(train, test)
	slices.Sort(all)
	for i, v := range all {
		if v != i {
			t.Fatalf("split is not a partition of 0..n-1, found %d at %d", v, i)
		}
	}
}

func TestFitLinearRegressionMismatchedLengths(t *testing.T) {
	if _, err := FitLinearRegression([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
}
