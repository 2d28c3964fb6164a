package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"carematch/internal/apperror"
)

// postgresFamily holds the behaviour shared by the lib/pq and pgx dialects.
type postgresFamily struct{}

func (postgresFamily) DSN(rawURL string) (string, error) {
	scheme, rest, ok := splitScheme(rawURL)
	if !ok {
		// key=value connection strings are accepted as-is
		return rawURL, nil
	}
	if scheme != "postgres" && scheme != "postgresql" && scheme != "pgx" {
		return "", fmt.Errorf("postgres: unexpected scheme %q", scheme)
	}
	return "postgres://" + rest, nil
}

func (postgresFamily) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (postgresFamily) SupportsLastInsertId() bool {
	// PostgreSQL doesn't support LastInsertId(), needs RETURNING clause
	return false
}

func (postgresFamily) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// PostgreSQL has foreign keys enabled by default, no pragma needed
	return nil
}

func (postgresFamily) MigrationsSubdir() string {
	return "postgres"
}

func (postgresFamily) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (postgresFamily) ResetSequenceQuery(table, column string) string {
	return fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 1), MAX(%s) IS NOT NULL) FROM %s",
		table, column, column, column, table,
	)
}

// constraintKindForSQLState maps class 23 SQLSTATE codes.
func constraintKindForSQLState(code string) string {
	switch code {
	case "23505":
		return apperror.ConstraintUnique
	case "23503":
		return apperror.ConstraintForeignKey
	case "23502":
		return apperror.ConstraintNotNull
	case "23514":
		return apperror.ConstraintCheck
	}
	return ""
}

func postgresDetail(constraint, table, column, detail string) string {
	name := constraint
	if name == "" && table != "" && column != "" {
		name = table + "." + column
	}
	switch {
	case name != "" && detail != "":
		return name + " (" + detail + ")"
	case name != "":
		return name
	}
	return detail
}

// PostgresDialect implements Dialect for PostgreSQL through lib/pq
type PostgresDialect struct {
	postgresFamily
}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) ClassifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	kind := constraintKindForSQLState(string(pqErr.Code))
	if kind == "" {
		return err
	}
	return apperror.ConstraintViolation(kind, postgresDetail(pqErr.Constraint, pqErr.Table, pqErr.Column, pqErr.Detail), err)
}
