package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"carematch/internal/config"
)

// DB wraps the connection pool with dialect support. It is shared by the
// whole process; units of work are scoped per call (see RunInTx).
type DB struct {
	*sql.DB
	Dialect Dialect
	logger  *slog.Logger
	echo    bool
}

// Options tunes Open.
type Options struct {
	Logger  *slog.Logger
	EchoSQL bool
}

// InitializeWithConfig opens the database named by DATABASE_URL.
func InitializeWithConfig(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	dialect, err := ResolveDialect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return Open(dialect, cfg.DatabaseURL, Options{Logger: logger, EchoSQL: cfg.EchoSQL})
}

// Open connects using an explicit dialect.
func Open(dialect Dialect, rawURL string, opts Options) (*DB, error) {
	dsn, err := dialect.DSN(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s DSN: %w", dialect.Name(), err)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("database connection established",
		slog.String("dialect", dialect.Name()),
		slog.String("url", redactURL(rawURL)),
	)

	return &DB{DB: db, Dialect: dialect, logger: logger, echo: opts.EchoSQL}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// GetDialect returns the database dialect
func (db *DB) GetDialect() Dialect {
	return db.Dialect
}

// QueryContext executes a query with automatic placeholder rewriting
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = db.prepare(ctx, query, args)
	return db.DB.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns a single row with automatic placeholder rewriting
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	query = db.prepare(ctx, query, args)
	return db.DB.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement and classifies constraint failures
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = db.prepare(ctx, query, args)
	result, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, db.Dialect.ClassifyError(err)
	}
	return result, nil
}

// ExecReturningID executes an INSERT and returns the generated value of idColumn.
func (db *DB) ExecReturningID(ctx context.Context, idColumn, query string, args ...any) (int64, error) {
	return execReturningID(ctx, db.DB, db.Dialect, idColumn, db.prepare(ctx, query, args), args)
}

func (db *DB) prepare(ctx context.Context, query string, args []any) string {
	return echo(ctx, db.logger, db.echo, db.Dialect.RewriteQuery(query), args)
}

type execQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execReturningID handles the dialect difference between databases that
// support LastInsertId() and PostgreSQL, which requires a RETURNING clause.
func execReturningID(ctx context.Context, q execQueryer, dialect Dialect, idColumn, query string, args []any) (int64, error) {
	if dialect.SupportsLastInsertId() {
		result, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, dialect.ClassifyError(err)
		}
		return result.LastInsertId()
	}

	query = strings.TrimSuffix(strings.TrimSpace(query), ";")
	query += " RETURNING " + idColumn

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, dialect.ClassifyError(err)
	}
	return id, nil
}

func echo(ctx context.Context, logger *slog.Logger, enabled bool, query string, args []any) string {
	if enabled {
		logger.DebugContext(ctx, "sql",
			slog.String("query", strings.Join(strings.Fields(query), " ")),
			slog.Int("args", len(args)),
		)
	}
	return query
}
