package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	m "cryptoforecast/data/models"
)

type PipelineResult struct {
	Tables    []*m.PriceTable
	Forecasts []*m.ForecastResult
}

// RunPipeline runs extract, transform, load and forecast once. When nothing could be
// extracted the later stages are skipped, no store is opened and the run still succeeds.
func (sc *ServiceContext) RunPipeline() (*PipelineResult, error) {
	start := time.Now()
	res := &PipelineResult{}

	data := sc.Extract()
	if len(data) == 0 {
		sc.Logger.Warn("No data extracted, skipping transform, load and forecast")
		return res, nil
	}

	res.Tables = sc.Transform(data)
	sc.Logger.Info("Transform finished", zap.Duration("elapsed", time.Since(start)))

	store, err := sc.OpenStore(sc.Context)
	if err != nil {
		return nil, fmt.Errorf("error creating database connection: %w", err)
	}
	defer store.Close()

	if err := store.EnsurePipelineRunHistory(sc.Context); err != nil {
		return nil, err
	}

	runId, err := store.InsertPipelineRunHistory(sc.Context, len(res.Tables))
	if err != nil {
		return nil, err
	}

	if err := sc.Load(store, res.Tables); err != nil {
		return nil, sc.markRunAsFailure(store, runId, err)
	}
	sc.Logger.Info("Load finished", zap.Duration("elapsed", time.Since(start)))

	res.Forecasts, err = sc.Forecast(res.Tables)
	if err != nil {
		return nil, sc.markRunAsFailure(store, runId, err)
	}

	// run history is closed out even after an interrupt
	historyCtx := context.WithoutCancel(sc.Context)
	if err := store.UpdatePipelineRunAsSuccess(historyCtx, runId); err != nil {
		return nil, err
	}

	run, err := store.GetPipelineRun(historyCtx, runId)
	if err != nil {
		sc.Logger.Warn("Unable to read back pipeline run", zap.Int32("run_id", runId), zap.Error(err))
	} else {
		sc.Logger.Info("Pipeline run recorded",
			zap.Int32("run_id", run.Id),
			zap.Int32("assets", run.AssetCount),
			zap.Time("started_at", run.StartedAt),
			zap.Time("finished_at", run.FinishedAt.Time),
		)
	}

	sc.Logger.Info("Pipeline completed", zap.Int32("run_id", runId), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (sc *ServiceContext) markRunAsFailure(store PriceStore, runId int32, cause error) error {
	if err := store.UpdatePipelineRunAsFailure(context.WithoutCancel(sc.Context), runId, cause.Error()); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
