package db

import (
	"context"

	"github.com/google/uuid"
)

// CreateCustomer inserts a customer under a freshly generated id.
func (d *DB) CreateCustomer(ctx context.Context, name string) (Customer, error) {
	c := Customer{ID: uuid.New(), Name: name}
	if _, err := d.ExecContext(ctx, d.Rebind(`INSERT INTO customers (id, name) VALUES (?, ?)`), c.ID, c.Name); err != nil {
		return Customer{}, classify("create customer", err)
	}
	return c, nil
}

// FetchCustomers returns every customer in the store's natural order.
func (d *DB) FetchCustomers(ctx context.Context) ([]Customer, error) {
	out := []Customer{}
	if err := d.SelectContext(ctx, &out, `SELECT id, name FROM customers`); err != nil {
		return nil, classify("fetch customers", err)
	}
	return out, nil
}
