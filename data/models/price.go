package models

import (
	"strings"
	"time"

	"github.com/guregu/null/v6"
)

// RawPrice is one [epoch milliseconds, price] pair exactly as the provider returns it.
type RawPrice [2]float64

func (rp RawPrice) EpochMillis() int64 {
	return int64(rp[0])
}

func (rp RawPrice) Price() float64 {
	return rp[1]
}

type PricePoint struct {
	Timestamp time.Time `db:"timestamp"`
	Price     float64   `db:"price"`
}

// PriceRow is a persisted price point plus the columns the forecaster fills in.
// DayOffset and PredictedPrice only live in memory.
type PriceRow struct {
	PricePoint
	DayOffset      null.Int
	PredictedPrice null.Float
}

type PriceTable struct {
	Symbol string
	Rows   []*PriceRow
}

// TableName is the relational table the series is written to.
func (pt *PriceTable) TableName() string {
	return strings.ToLower(pt.Symbol)
}

func (pt *PriceTable) Points() []PricePoint {
	res := make([]PricePoint, len(pt.Rows))
	for i, r := range pt.Rows {
		res[i] = r.PricePoint
	}
	return res
}
