package queries

import (
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5"
)

//go:embed create/*.sql drop/*.sql insert/*.sql select/*.sql update/*.sql
var Files embed.FS

// files are compiled into the binary, paths below are relative to this package

type CreateQueries struct {
	PipelineRunHistory string
	PriceTable         string
}

type DropQueries struct {
	PriceTable string
}

type InsertQueries struct {
	PipelineRun string
}

type SelectQueries struct {
	PipelineRunById string
	PriceTable      string
}

type UpdateQueries struct {
	PipelineRun string
}

type QueryHelperStruct struct {
	Create CreateQueries
	Drop   DropQueries
	Insert InsertQueries
	Select SelectQueries
	Update UpdateQueries
}

var QueryHelper = QueryHelperStruct{
	Create: CreateQueries{
		PipelineRunHistory: "create/pipeline_run_history.sql",
		PriceTable:         "create/price_table.sql",
	},
	Drop: DropQueries{
		PriceTable: "drop/price_table.sql",
	},
	Insert: InsertQueries{
		PipelineRun: "insert/pipeline_run.sql",
	},
	Select: SelectQueries{
		PipelineRunById: "select/pipeline_run_by_id.sql",
		PriceTable:      "select/price_table.sql",
	},
	Update: UpdateQueries{
		PipelineRun: "update/pipeline_run.sql",
	},
}

func Get(path string) string {
	content, err := Files.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("error reading query file: %w", err))
	}

	return string(content)
}

// GetForTable fills the table placeholder of a query whose target table is only known at runtime.
// Identifiers cannot be bound as parameters, so the name is sanitized by pgx instead.
func GetForTable(path string, table string) string {
	return fmt.Sprintf(Get(path), pgx.Identifier{table}.Sanitize())
}
