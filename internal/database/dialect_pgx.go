package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"carematch/internal/apperror"
)

// PgxDialect implements Dialect for PostgreSQL through pgx's database/sql driver
type PgxDialect struct {
	postgresFamily
}

// NewPgxDialect creates a new pgx dialect
func NewPgxDialect() *PgxDialect {
	return &PgxDialect{}
}

func (d *PgxDialect) Name() string {
	return "pgx"
}

func (d *PgxDialect) DriverName() string {
	return "pgx"
}

func (d *PgxDialect) ClassifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	kind := constraintKindForSQLState(pgErr.Code)
	if kind == "" {
		return err
	}
	return apperror.ConstraintViolation(kind, postgresDetail(pgErr.ConstraintName, pgErr.TableName, pgErr.ColumnName, pgErr.Detail), err)
}
