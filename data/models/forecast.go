package models

// RegressionModel is an ordinary least squares line, price = Intercept + Slope * day.
type RegressionModel struct {
	Slope     float64
	Intercept float64
}

func (rm RegressionModel) Predict(day float64) float64 {
	return rm.Intercept + rm.Slope*day
}

type ForecastPoint struct {
	DayOffset int
	Price     float64
}

type ForecastResult struct {
	Symbol    string
	Model     RegressionModel
	TrainSize int
	TestSize  int
	Future    []ForecastPoint
}
