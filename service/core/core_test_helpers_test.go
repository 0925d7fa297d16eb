package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	m "cryptoforecast/data/models"
	"cryptoforecast/service/api/coingecko"
)

type fakeMarketData struct {
	series map[string][]m.RawPrice
	status map[string]int
}

func (f *fakeMarketData) GetMarketChart(ctx context.Context, asset m.Asset) ([]m.RawPrice, error) {
	if code, ok := f.status[asset.Symbol]; ok {
		return nil, &coingecko.UnexpectedStatusError{Symbol: asset.Symbol, StatusCode: code}
	}
	return f.series[asset.Symbol], nil
}

// fakeStore keeps the last table written per name, mirroring drop-and-recreate.
type fakeStore struct {
	tables   map[string][]m.PricePoint
	failOn   string
	runs     map[int32]string
	nextRun  int32
	closed   bool
	ensureOk bool
	// onReplace runs before each table write
	onReplace func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: map[string][]m.PricePoint{}, runs: map[int32]string{}}
}

func (s *fakeStore) ReplacePriceTable(ctx context.Context, table *m.PriceTable) (int64, error) {
	if s.onReplace != nil {
		s.onReplace()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if table.TableName() == s.failOn {
		return 0, errors.New("disk full")
	}
	s.tables[table.TableName()] = table.Points()
	return int64(len(table.Rows)), nil
}

func (s *fakeStore) EnsurePipelineRunHistory(ctx context.Context) error {
	s.ensureOk = true
	return nil
}

func (s *fakeStore) InsertPipelineRunHistory(ctx context.Context, assetCount int) (int32, error) {
	s.nextRun++
	s.runs[s.nextRun] = "running"
	return s.nextRun, nil
}

func (s *fakeStore) UpdatePipelineRunAsSuccess(ctx context.Context, runId int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.runs[runId] = "success"
	return nil
}

func (s *fakeStore) UpdatePipelineRunAsFailure(ctx context.Context, runId int32, errorMessage string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.runs[runId] = errorMessage
	return nil
}

func (s *fakeStore) GetPipelineRun(ctx context.Context, runId int32) (*m.PipelineRun, error) {
	if _, ok := s.runs[runId]; !ok {
		return nil, fmt.Errorf("unable to get pipeline run %d", runId)
	}
	return &m.PipelineRun{Id: runId, StartedAt: time.Now()}, nil
}

func (s *fakeStore) Close() {
	s.closed = true
}

func newTestContext(t *testing.T, md MarketChartSource, store PriceStore) (*ServiceContext, *int) {
	t.Helper()
	opened := 0
	sc := &ServiceContext{
		Context:    context.Background(),
		Logger:     zaptest.NewLogger(t),
		MarketData: md,
		OpenStore: func(ctx context.Context) (PriceStore, error) {
			opened++
			return store, nil
		},
		Assets:    m.DefaultAssets(),
		OutputDir: t.TempDir(),
	}
	return sc, &opened
}

// linearSeries is price = intercept + slope*day, one point per day from 2024-10-16 UTC.
func linearSeries(days int, intercept, slope float64) []m.RawPrice {
	const start = 1729036800000
	res := make([]m.RawPrice, days)
	for d := range days {
		res[d] = m.RawPrice{float64(start + int64(d)*86_400_000), intercept + slope*float64(d)}
	}
	return res
}
