package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// DBTX defines the database operations needed by repositories.
// It is satisfied by both *DB and *Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecReturningID(ctx context.Context, idColumn, query string, args ...any) (int64, error)
	GetDialect() Dialect
}

var (
	_ DBTX = (*DB)(nil)
	_ DBTX = (*Tx)(nil)
)

// Tx wraps sql.Tx with dialect-aware methods
type Tx struct {
	*sql.Tx
	dialect Dialect
	logger  *slog.Logger
	echo    bool
}

// BeginTx starts a new transaction
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect, logger: db.logger, echo: db.echo}, nil
}

// RunInTx is the unit of work: fn runs inside one transaction that is
// committed when fn returns nil and rolled back otherwise. The underlying
// connection goes back to the pool on every path, including panics.
func (db *DB) RunInTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				db.logger.WarnContext(ctx, "rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", db.Dialect.ClassifyError(err))
	}
	committed = true
	return nil
}

// GetDialect returns the transaction's dialect
func (tx *Tx) GetDialect() Dialect {
	return tx.dialect
}

// QueryContext executes a query with automatic placeholder rewriting
func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = echo(ctx, tx.logger, tx.echo, tx.dialect.RewriteQuery(query), args)
	return tx.Tx.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns a single row with automatic placeholder rewriting
func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	query = echo(ctx, tx.logger, tx.echo, tx.dialect.RewriteQuery(query), args)
	return tx.Tx.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement and classifies constraint failures
func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = echo(ctx, tx.logger, tx.echo, tx.dialect.RewriteQuery(query), args)
	result, err := tx.Tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, tx.dialect.ClassifyError(err)
	}
	return result, nil
}

// ExecReturningID executes an INSERT and returns the generated value of idColumn
func (tx *Tx) ExecReturningID(ctx context.Context, idColumn, query string, args ...any) (int64, error) {
	query = echo(ctx, tx.logger, tx.echo, tx.dialect.RewriteQuery(query), args)
	return execReturningID(ctx, tx.Tx, tx.dialect, idColumn, query, args)
}

// ResetSequence realigns an auto-increment generator after explicit-key inserts.
func (tx *Tx) ResetSequence(ctx context.Context, table, column string) error {
	query := tx.dialect.ResetSequenceQuery(table, column)
	if query == "" {
		return nil
	}
	if _, err := tx.Tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset sequence for %s.%s: %w", table, column, err)
	}
	return nil
}
