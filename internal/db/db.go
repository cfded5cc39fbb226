package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect names the relational store behind a DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case MySQL:
		return "mysql", nil
	case SQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported dialect %q", string(d))
}

// Pool holds connection pool limits. Zero values keep database/sql defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// PingAttempts bounds the startup wait for the store (one attempt per second).
	PingAttempts int
}

// DB is the pooled handle shared by every request.
type DB struct {
	*sqlx.DB
	dialect Dialect

	// serializes WithLock on sqlite, which has no advisory locks
	localLock sync.Mutex
}

// Open connects to the store and waits until it answers a ping.
func Open(ctx context.Context, dialect Dialect, dsn string, pool Pool) (*DB, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}
	if dialect == SQLite {
		if dsn, err = sqliteDSN(dsn); err != nil {
			return nil, err
		}
	}
	xdb, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if pool.MaxOpenConns > 0 {
		xdb.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		xdb.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		xdb.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	attempts := pool.PingAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; ; i++ {
		err = xdb.PingContext(ctx)
		if err == nil {
			break
		}
		if i+1 >= attempts {
			_ = xdb.Close()
			return nil, fmt.Errorf("database not reachable: %w", err)
		}
		select {
		case <-ctx.Done():
			_ = xdb.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	return &DB{DB: xdb, dialect: dialect}, nil
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off per
// connection unless asked. A DSN that explicitly disables it is refused.
func sqliteDSN(dsn string) (string, error) {
	_, query, hasQuery := strings.Cut(dsn, "?")
	vals, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("parse sqlite dsn: %w", err)
	}
	for _, k := range []string{"_foreign_keys", "_fk"} {
		v := vals.Get(k)
		if v == "" {
			continue
		}
		switch strings.ToLower(v) {
		case "1", "on", "true", "yes":
			return dsn, nil
		}
		return "", fmt.Errorf("sqlite dsn sets %s=%s; foreign keys must stay on", k, v)
	}
	switch {
	case !hasQuery:
		return dsn + "?_foreign_keys=on", nil
	case query == "":
		return dsn + "_foreign_keys=on", nil
	}
	return dsn + "&_foreign_keys=on", nil
}

// Dialect reports which store the handle talks to.
func (d *DB) Dialect() Dialect { return d.dialect }

func (d *DB) Close() error { return d.DB.Close() }

// Ping checks that the store answers.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.DB.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}
