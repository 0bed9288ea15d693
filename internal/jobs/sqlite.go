package jobs

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// readSQLite returns every row of table. NULL columns are left out of the row.
func readSQLite(ctx context.Context, path, table string) ([]map[string]string, int64, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, 0, fmt.Errorf("invalid table name %q", table)
	}

	// sqlite would create a missing database file
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, 0, err
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	result := []map[string]string{}
	for rows.Next() {
		values := make(map[string]any)
		if err := rows.MapScan(values); err != nil {
			return nil, 0, err
		}
		row := make(map[string]string, len(values))
		for k, v := range values {
			if v != nil {
				row[k] = stringify(v)
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, info.Size(), nil
}
