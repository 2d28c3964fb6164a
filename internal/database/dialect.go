package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// Name identifies the dialect in logs and backup files
	Name() string

	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN converts DATABASE_URL into the driver's data source name
	DSN(rawURL string) (string, error)

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// ClassifyError turns a driver constraint error into an apperror.ConstraintViolation.
	// Other errors are returned unchanged.
	ClassifyError(err error) error

	// ResetSequenceQuery realigns the generator behind an auto-increment column
	// after rows were inserted with explicit keys. Empty means nothing to do.
	ResetSequenceQuery(table, column string) string
}

// ResolveDialect picks a dialect from an explicit driver name or, when that
// is empty, from the scheme of the connection URL.
func ResolveDialect(driver, rawURL string) (Dialect, error) {
	name := strings.ToLower(strings.TrimSpace(driver))
	if name == "" {
		name = inferDriver(rawURL)
	}

	switch name {
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "pgx":
		return NewPgxDialect(), nil
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	case "sqlite", "sqlite3", "file":
		return NewSQLiteDialect(), nil
	case "":
		return nil, fmt.Errorf("cannot infer database driver from %q; set DATABASE_DRIVER", redactURL(rawURL))
	default:
		return nil, fmt.Errorf("unsupported database type: %s", name)
	}
}

// inferDriver returns the scheme without any SQLAlchemy "+driver" suffix,
// e.g. postgresql+psycopg2://... -> postgresql.
func inferDriver(rawURL string) string {
	scheme, _, ok := splitScheme(rawURL)
	if ok {
		return scheme
	}
	if strings.HasPrefix(rawURL, "file:") {
		return "file"
	}
	lower := strings.ToLower(rawURL)
	for _, suffix := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(lower, suffix) {
			return "sqlite"
		}
	}
	if rawURL == ":memory:" {
		return "sqlite"
	}
	return ""
}

func splitScheme(rawURL string) (scheme, rest string, ok bool) {
	idx := strings.Index(rawURL, "://")
	if idx <= 0 {
		return "", rawURL, false
	}
	scheme = strings.ToLower(rawURL[:idx])
	if plus := strings.Index(scheme, "+"); plus >= 0 {
		scheme = scheme[:plus]
	}
	return scheme, rawURL[idx+3:], true
}

// redactURL hides the password of a URL before it is logged.
func redactURL(rawURL string) string {
	_, rest, ok := splitScheme(rawURL)
	if !ok {
		return rawURL
	}
	at := strings.LastIndex(rest, "@")
	colon := strings.Index(rest, ":")
	if at < 0 || colon < 0 || colon > at {
		return rawURL
	}
	prefix := rawURL[:len(rawURL)-len(rest)]
	return prefix + rest[:colon] + ":xxxxx" + rest[at:]
}

// placeholderRegexp matches ? placeholders
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
