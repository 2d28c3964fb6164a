package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"carematch/internal/apperror"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) Name() string {
	return "mysql"
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

// DSN accepts either a mysql:// URL or a native go-sql-driver DSN. DATE
// columns must scan into time.Time, and UPDATE must report matched rows
// rather than changed rows so that a no-op update is not mistaken for a
// missing key.
func (d *MySQLDialect) DSN(rawURL string) (string, error) {
	var cfg *mysql.Config
	if scheme, _, ok := splitScheme(rawURL); ok {
		if scheme != "mysql" && scheme != "mariadb" {
			return "", fmt.Errorf("mysql: unexpected scheme %q", scheme)
		}
		parsed, err := configFromURL(rawURL)
		if err != nil {
			return "", err
		}
		cfg = parsed
	} else {
		parsed, err := mysql.ParseDSN(rawURL)
		if err != nil {
			return "", fmt.Errorf("mysql: parsing DSN: %w", err)
		}
		cfg = parsed
	}

	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func configFromURL(rawURL string) (*mysql.Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("mysql: parsing URL: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Hostname() + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	if q := u.Query(); len(q) > 0 {
		cfg.Params = make(map[string]string, len(q))
		for k := range q {
			cfg.Params[k] = q.Get(k)
		}
	}
	return cfg, nil
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// FOREIGN_KEY_CHECKS is on by default for InnoDB; the session variable is
	// per connection so it cannot be forced here for the whole pool.
	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

func (d *MySQLDialect) ClassifyError(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}

	var kind string
	switch myErr.Number {
	case 1062:
		kind = apperror.ConstraintUnique
	case 1216, 1217, 1451, 1452:
		kind = apperror.ConstraintForeignKey
	case 1048, 1364:
		kind = apperror.ConstraintNotNull
	case 3819:
		kind = apperror.ConstraintCheck
	default:
		return err
	}
	return apperror.ConstraintViolation(kind, myErr.Message, err)
}

// ResetSequenceQuery is empty: InnoDB moves AUTO_INCREMENT past explicit keys.
func (d *MySQLDialect) ResetSequenceQuery(table, column string) string {
	return ""
}
