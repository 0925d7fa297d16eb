package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	m "cryptoforecast/data/models"
	q "cryptoforecast/data/queries"
)

var priceTableColumns = []string{"timestamp", "price"}

// ReplacePriceTable drops any existing table for the symbol, recreates it and copies every row in.
// Runs in one transaction so a failed copy leaves the previous run's table in place.
func (pg *Postgres) ReplacePriceTable(ctx context.Context, table *m.PriceTable) (int64, error) {
	name := table.TableName()

	tx, err := pg.GetTransaction(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction for table %s: %w", name, err)
	}
	defer tx.Rollback(ctx) // no-op once committed

	if err := pg.exec(ctx, q.GetForTable(q.QueryHelper.Drop.PriceTable, name), nil, tx); err != nil {
		return 0, fmt.Errorf("error dropping table %s: %w", name, err)
	}

	if err := pg.exec(ctx, q.GetForTable(q.QueryHelper.Create.PriceTable, name), nil, tx); err != nil {
		return 0, fmt.Errorf("error creating table %s: %w", name, err)
	}

	entries := make([][]any, len(table.Rows))
	for i, r := range table.Rows {
		entries[i] = []any{r.Timestamp, r.Price}
	}

	ct, err := pg.BulkInsert(ctx, name, priceTableColumns, entries, tx)
	if err != nil {
		return 0, fmt.Errorf("error copying rows into table %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing table %s: %w", name, err)
	}

	return ct, nil
}

func (pg *Postgres) GetPriceTable(ctx context.Context, symbol string) ([]*m.PricePoint, error) {
	table := m.PriceTable{Symbol: symbol}
	query := q.GetForTable(q.QueryHelper.Select.PriceTable, table.TableName())

	res, err := Query[m.PricePoint](ctx, pg, query, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("unable to query price table (%s): %w", table.TableName(), err)
	}
	return res, nil
}
