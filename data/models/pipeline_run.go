package models

import (
	"time"

	"github.com/guregu/null/v6"
)

type PipelineRun struct {
	Id           int32       `db:"id"`
	StartedAt    time.Time   `db:"started_at"`
	FinishedAt   null.Time   `db:"finished_at"`
	AssetCount   int32       `db:"asset_count"`
	ErrorMessage null.String `db:"error_message"`
}
