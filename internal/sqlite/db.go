package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/ganot/formbuilder/internal/query"
	msqlite "modernc.org/sqlite"
)

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(query.FoldFunc, 1, foldText)
}

// foldText backs query.FoldFunc. NULL stays NULL.
func foldText(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return query.Fold(v), nil
	case []byte:
		return query.Fold(string(v)), nil
	default:
		return v, nil
	}
}

// Config holds connection and pool settings.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Observer receives the outcome of every repository statement.
type Observer interface {
	ObserveQuery(op string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, time.Duration, error) {}

// DB wraps a SQLite connection pool. It is created once by the process and
// shared by all repositories.
type DB struct {
	*sql.DB
	observer Observer
}

// New opens the database and applies pool limits. Pragmas are set through the
// DSN so every pooled connection gets them.
func New(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if isMemory(cfg.Path) {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{DB: db, observer: nopObserver{}}, nil
}

// SetObserver installs o as the statement observer. A nil o disables observation.
func (db *DB) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	db.observer = o
}

// Health reports whether the store answers. Failures wrap domain.ErrStoreUnavailable.
func (db *DB) Health(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// observe starts timing op. The returned func reports the outcome held in
// *err, so it is meant to be deferred with a named error result.
func (db *DB) observe(op string) func(err *error) {
	start := time.Now()
	return func(err *error) {
		db.observer.ObserveQuery(op, time.Since(start), *err)
	}
}

func dsn(path string) string {
	pragmas := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	if !isMemory(path) {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(pragmas, "&")
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
