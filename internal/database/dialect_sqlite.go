package database

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"carematch/internal/apperror"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

// DSN turns sqlite://path, file:path or a bare path into a file: DSN.
// Pragmas go in the DSN so every pooled connection gets them.
func (d *SQLiteDialect) DSN(rawURL string) (string, error) {
	path := rawURL
	if _, rest, ok := splitScheme(rawURL); ok {
		path = rest
	}
	path = strings.TrimPrefix(path, "file:")

	params := "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"
	if strings.Contains(path, "?") {
		return "file:" + path + "&" + params, nil
	}
	return "file:" + path + "?" + params, nil
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return err
	}
	if enabled != 1 {
		return errors.New("sqlite: foreign key enforcement is off")
	}
	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) ClassifyError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}

	var kind string
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		kind = apperror.ConstraintUnique
	case sqlite3.ErrConstraintForeignKey:
		kind = apperror.ConstraintForeignKey
	case sqlite3.ErrConstraintNotNull:
		kind = apperror.ConstraintNotNull
	case sqlite3.ErrConstraintCheck:
		kind = apperror.ConstraintCheck
	default:
		return err
	}
	return apperror.ConstraintViolation(kind, sqliteErr.Error(), err)
}

// ResetSequenceQuery is empty: INTEGER PRIMARY KEY continues from MAX(rowid).
func (d *SQLiteDialect) ResetSequenceQuery(table, column string) string {
	return ""
}
