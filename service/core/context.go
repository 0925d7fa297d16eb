package core

import (
	"context"

	"go.uber.org/zap"

	m "cryptoforecast/data/models"
	r "cryptoforecast/data/repos"
)

// MarketChartSource is the provider side of the pipeline, one call per asset.
type MarketChartSource interface {
	GetMarketChart(ctx context.Context, asset m.Asset) ([]m.RawPrice, error)
}

// PriceStore is the relational side of the pipeline, implemented by repos.Postgres.
type PriceStore interface {
	ReplacePriceTable(ctx context.Context, table *m.PriceTable) (int64, error)
	EnsurePipelineRunHistory(ctx context.Context) error
	InsertPipelineRunHistory(ctx context.Context, assetCount int) (int32, error)
	UpdatePipelineRunAsSuccess(ctx context.Context, runId int32) error
	UpdatePipelineRunAsFailure(ctx context.Context, runId int32, errorMessage string) error
	GetPipelineRun(ctx context.Context, runId int32) (*m.PipelineRun, error)
	Close()
}

var _ PriceStore = (*r.Postgres)(nil)

// StoreFactory opens the store. It is only called once there is data to load.
type StoreFactory func(ctx context.Context) (PriceStore, error)

// PlotOpener shows a saved chart, browser.OpenFile in production.
type PlotOpener func(path string) error

type ServiceContext struct {
	Context    context.Context
	Logger     *zap.Logger
	MarketData MarketChartSource
	OpenStore  StoreFactory
	Assets     []m.Asset
	OutputDir  string
	OpenPlot   PlotOpener
}
