package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"manuaisprj/internal/config"
)

// New opens a database/sql handle. driver is config.DriverPostgres or
// config.DriverSQLite; for sqlite url is a file path.
func New(driver, url string) (*sql.DB, error) {
	switch driver {
	case config.DriverPostgres:
		return sql.Open("postgres", url)
	case config.DriverSQLite:
		dsn := url
		if !strings.Contains(dsn, "?") {
			dsn += "?mode=rwc"
		}
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		conn.SetMaxOpenConns(1) // one writer
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(time.Hour)
		return conn, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, driver)
	}
}

func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
