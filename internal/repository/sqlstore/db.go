package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Dialect captures the few differences between supported databases.
type Dialect struct {
	Name        string
	placeholder sq.PlaceholderFormat
	textType    string
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMySQL:
		return Dialect{Name: DriverMySQL, placeholder: sq.Question, textType: "CHAR"}, nil
	case DriverPostgres, "pgx":
		return Dialect{Name: DriverPostgres, placeholder: sq.Dollar, textType: "TEXT"}, nil
	case DriverSQLite:
		return Dialect{Name: DriverSQLite, placeholder: sq.Question, textType: "TEXT"}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Builder returns a statement builder using the dialect's placeholders.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// AsText renders column as text so DATE and TIME values scan the same on every driver.
func (d Dialect) AsText(column, alias string) string {
	return fmt.Sprintf("CAST(%s AS %s) AS %s", column, d.textType, alias)
}

// DB is the process-wide connection pool together with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Options configures Open.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to the configured database and verifies it is reachable.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch dialect.Name {
	case DriverPostgres:
		cfg, err := pgx.ParseConfig(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		db = stdlib.OpenDB(*cfg)
	case DriverSQLite:
		if opts.DSN != ":memory:" && !strings.HasPrefix(opts.DSN, "file:") {
			if err := os.MkdirAll(filepath.Dir(opts.DSN), 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		db, err = sql.Open(DriverSQLite, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
	default:
		db, err = sql.Open(DriverMySQL, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql db: %w", err)
		}
	}

	if dialect.Name == DriverSQLite {
		// a single connection keeps in-memory databases alive and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	} else {
		if opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
			db.SetMaxIdleConns(opts.MaxOpenConns)
		}
		if opts.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}
