package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/marginbooks/margin/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type key int

const ctxKey key = 0

func WithLogging(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey, true)
}

type logQueryHook struct {
	log logger.Logger
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *logQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	enabled, ok := ctx.Value(ctxKey).(bool)
	if !ok || !enabled {
		return
	}

	qh.log.Debug(event.Query)
}

// DB wraps the bun handle with the process-wide store lock. Every logical
// store operation holds the lock for its full duration, so at most one
// operation is in flight at any instant regardless of how many callers
// exist. Filesystem scans run outside the lock.
type DB struct {
	*bun.DB

	mu sync.Mutex
}

// Acquire takes the store lock. Callers must pair it with Release on every
// path, including errors.
func (db *DB) Acquire() {
	db.mu.Lock()
}

// Release drops the store lock.
func (db *DB) Release() {
	db.mu.Unlock()
}

// dsnConnector adapts a driver without DriverContext support for use with
// sql.OpenDB.
type dsnConnector struct {
	dsn string
	drv driver.Driver
}

func (c dsnConnector) Connect(context.Context) (driver.Conn, error) {
	return c.drv.Open(c.dsn)
}

func (c dsnConnector) Driver() driver.Driver {
	return c.drv
}

func New(cfg *config.Config) (*DB, error) {
	// The store lives in an app-private data directory; create it on first
	// launch.
	if cfg.DatabaseFilePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabaseFilePath), 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create data directory")
		}
	}

	// The shim's driver doesn't implement driver.DriverContext, so wrap it
	// in a plain connector and layer the SQLITE_BUSY retry logic on top.
	connector := dsnConnector{dsn: cfg.DatabaseFilePath, drv: sqliteshim.Driver()}
	retryConnector := newRetryConnector(connector, cfg.DatabaseMaxRetries)
	sqldb := sql.OpenDB(retryConnector)

	// One connection: the store lock already serializes every operation, and
	// a single shared connection keeps :memory: databases coherent in tests.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	// print out all queries in debug mode
	if cfg.DatabaseDebug {
		db.AddQueryHook(&logQueryHook{logger.NewWithLevel("debug")})
	}

	// Retry up to a few times to ensure that the database can connect.
	var err error
	for i := 0; i < cfg.DatabaseConnectRetryCount; i++ {
		_, err = db.Exec("SELECT 1")
		if err != nil {
			time.Sleep(cfg.DatabaseConnectRetryDelay)
			continue
		}
		break
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}

	// busy_timeout makes SQLite wait before returning SQLITE_BUSY.
	busyTimeoutMs := cfg.DatabaseBusyTimeout.Milliseconds()
	_, err = db.Exec("PRAGMA busy_timeout=?", busyTimeoutMs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set busy_timeout")
	}

	// book_tags cascades on tag deletion.
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}

	return &DB{DB: db}, nil
}
