// Package repository holds the SQL for each entity. Repositories run against
// database.DBTX so the same code serves the pool and a transaction.
package repository

import (
	"database/sql"
	"fmt"
)

// affected reports whether a write touched at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
