package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	m "cryptoforecast/data/models"
	q "cryptoforecast/data/queries"
)

func (pg *Postgres) EnsurePipelineRunHistory(ctx context.Context) error {
	if err := pg.exec(ctx, q.Get(q.QueryHelper.Create.PipelineRunHistory), nil, nil); err != nil {
		return fmt.Errorf("error creating pipeline run history table: %w", err)
	}
	return nil
}

func (pg *Postgres) InsertPipelineRunHistory(ctx context.Context, assetCount int) (int32, error) {
	sql := q.Get(q.QueryHelper.Insert.PipelineRun)
	args := pgx.NamedArgs{
		"asset_count": assetCount,
	}

	var runId int32
	if err := pg.db.QueryRow(ctx, sql, args).Scan(&runId); err != nil {
		return 0, fmt.Errorf("error inserting pipeline run history: %w", err)
	}

	return runId, nil
}

func (pg *Postgres) GetPipelineRun(ctx context.Context, runId int32) (*m.PipelineRun, error) {
	sql := q.Get(q.QueryHelper.Select.PipelineRunById)
	res, err := QuerySingle[m.PipelineRun](ctx, pg, sql, pgx.NamedArgs{"id": runId})
	if err != nil {
		return nil, fmt.Errorf("unable to get pipeline run %d: %w", runId, err)
	}
	return res, nil
}

func (pg *Postgres) UpdatePipelineRunAsFailure(ctx context.Context, runId int32, errorMessage string) error {
	cleanErrorMessage := strings.TrimSpace(errorMessage)
	if cleanErrorMessage == "" {
		return fmt.Errorf("error message is required if pipeline run is failing, occurred in %d", runId)
	}

	return pg.updatePipelineRun(ctx, pgx.NamedArgs{
		"id":            runId,
		"error_message": cleanErrorMessage,
	})
}

func (pg *Postgres) UpdatePipelineRunAsSuccess(ctx context.Context, runId int32) error {
	return pg.updatePipelineRun(ctx, pgx.NamedArgs{
		"id":            runId,
		"error_message": nil,
	})
}

func (pg *Postgres) updatePipelineRun(ctx context.Context, args pgx.NamedArgs) error {
	sql := q.Get(q.QueryHelper.Update.PipelineRun)
	if err := pg.exec(ctx, sql, args, nil); err != nil {
		return fmt.Errorf("error updating pipeline run: %w", err)
	}
	return nil
}
