package seeder

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/database"
)

// EnsureTableColumns fails with the full list of missing columns when table lacks any of them.
func EnsureTableColumns(ctx context.Context, db database.Querier, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}

type tableColumns struct {
	table   string
	columns []string
}

// guarded checks the schema a seeder writes to before running it.
type guarded struct {
	Seeder
	db     database.Querier
	tables []tableColumns
}

func (g guarded) Run(ctx context.Context) error {
	for _, t := range g.tables {
		if err := EnsureTableColumns(ctx, g.db, t.table, t.columns...); err != nil {
			return err
		}
	}
	return g.Seeder.Run(ctx)
}
