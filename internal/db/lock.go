package db

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// WithLock runs fn while holding a store-wide advisory lock named name, so
// several API instances sharing one database cannot interleave resets.
// The lock lives on a dedicated connection and is released when fn returns.
func (d *DB) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	if d.dialect == SQLite {
		d.localLock.Lock()
		defer d.localLock.Unlock()
		return fn(ctx)
	}

	conn, err := d.DB.DB.Conn(ctx)
	if err != nil {
		return storageErr("acquire lock", err)
	}
	defer conn.Close()

	if err := acquire(ctx, conn, d.dialect, name); err != nil {
		return err
	}
	defer release(conn, d.dialect, name)

	return fn(ctx)
}

func acquire(ctx context.Context, conn *sql.Conn, dialect Dialect, name string) error {
	switch dialect {
	case Postgres:
		if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", lockKey(name)); err != nil {
			return storageErr("acquire lock", err)
		}
		return nil
	case MySQL:
		// -1 waits until the lock is free or ctx is cancelled
		var got sql.NullInt64
		if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, -1)", name).Scan(&got); err != nil {
			return storageErr("acquire lock", err)
		}
		if !got.Valid || got.Int64 != 1 {
			return storageErr("acquire lock", fmt.Errorf("could not acquire MySQL advisory lock %q (result=%v)", name, got))
		}
		return nil
	}
	return storageErr("acquire lock", fmt.Errorf("no advisory lock for dialect %q", dialect))
}

// release runs on a fresh context so a cancelled request still frees the lock.
func release(conn *sql.Conn, dialect Dialect, name string) {
	ctx := context.Background()
	switch dialect {
	case Postgres:
		_, _ = conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", lockKey(name))
	case MySQL:
		_, _ = conn.ExecContext(ctx, "SELECT RELEASE_LOCK(?)", name)
	}
}

// lockKey maps a lock name onto the bigint key space of pg_advisory_lock.
func lockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}
