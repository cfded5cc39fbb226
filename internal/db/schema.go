package db

import (
	"context"
	"fmt"
	"strings"
)

// Reservations depend on customers and restaurants, so drops run in
// reverse creation order.
var dropStmts = []string{
	`DROP TABLE IF EXISTS reservations`,
	`DROP TABLE IF EXISTS restaurants`,
	`DROP TABLE IF EXISTS customers`,
}

// {{ine}} expands to "IF NOT EXISTS" for EnsureSchema and to nothing for
// InitializeSchema, which always starts from dropped tables.
var createStmts = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE {{ine}} customers (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE {{ine}} restaurants (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE {{ine}} reservations (
			id UUID PRIMARY KEY,
			date DATE NOT NULL,
			party_count INTEGER NOT NULL CHECK (party_count > 0),
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			customer_id UUID NOT NULL REFERENCES customers(id),
			CONSTRAINT unique_customer_id_and_restaurant_id UNIQUE (customer_id, restaurant_id)
		)`,
	},
	MySQL: {
		`CREATE TABLE {{ine}} customers (
			id CHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE {{ine}} restaurants (
			id CHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE {{ine}} reservations (
			id CHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			party_count INT NOT NULL CHECK (party_count > 0),
			restaurant_id CHAR(36) NOT NULL,
			customer_id CHAR(36) NOT NULL,
			CONSTRAINT unique_customer_id_and_restaurant_id UNIQUE (customer_id, restaurant_id),
			CONSTRAINT fk_reservations_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id),
			CONSTRAINT fk_reservations_customer FOREIGN KEY (customer_id) REFERENCES customers(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	// sqlite enforces the REFERENCES clauses only with foreign_keys=on (Open adds it to every sqlite DSN)
	SQLite: {
		`CREATE TABLE {{ine}} customers (
			id TEXT PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE {{ine}} restaurants (
			id TEXT PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE {{ine}} reservations (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL,
			party_count INTEGER NOT NULL CHECK (party_count > 0),
			restaurant_id TEXT NOT NULL REFERENCES restaurants(id),
			customer_id TEXT NOT NULL REFERENCES customers(id),
			CONSTRAINT unique_customer_id_and_restaurant_id UNIQUE (customer_id, restaurant_id)
		)`,
	},
}

// InitializeSchema drops and recreates all tables. Destructive: every
// existing row is lost. Meant for reset/demo mode only.
func (d *DB) InitializeSchema(ctx context.Context) error {
	stmts := append([]string{}, dropStmts...)
	stmts = append(stmts, d.createStmts("")...)
	return d.execAll(ctx, "initialize schema", stmts)
}

// EnsureSchema creates missing tables and leaves existing data alone.
func (d *DB) EnsureSchema(ctx context.Context) error {
	return d.execAll(ctx, "ensure schema", d.createStmts("IF NOT EXISTS"))
}

func (d *DB) createStmts(ine string) []string {
	src := createStmts[d.dialect]
	out := make([]string, 0, len(src))
	for _, s := range src {
		s = strings.Replace(s, "{{ine}}", ine, 1)
		out = append(out, strings.Replace(s, "TABLE  ", "TABLE ", 1))
	}
	return out
}

// mysql rejects multi-statement Exec by default, so statements run one by one.
func (d *DB) execAll(ctx context.Context, op string, stmts []string) error {
	if len(stmts) == 0 {
		return storageErr(op, fmt.Errorf("no schema for dialect %q", d.dialect))
	}
	for _, s := range stmts {
		if _, err := d.DB.ExecContext(ctx, s); err != nil {
			return storageErr(op, err)
		}
	}
	return nil
}
