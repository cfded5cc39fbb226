package db

import (
	"context"

	"github.com/google/uuid"
)

// CreateRestaurant inserts a restaurant under a freshly generated id.
func (d *DB) CreateRestaurant(ctx context.Context, name string) (Restaurant, error) {
	r := Restaurant{ID: uuid.New(), Name: name}
	if _, err := d.ExecContext(ctx, d.Rebind(`INSERT INTO restaurants (id, name) VALUES (?, ?)`), r.ID, r.Name); err != nil {
		return Restaurant{}, classify("create restaurant", err)
	}
	return r, nil
}

func (d *DB) FetchRestaurants(ctx context.Context) ([]Restaurant, error) {
	out := []Restaurant{}
	if err := d.SelectContext(ctx, &out, `SELECT id, name FROM restaurants`); err != nil {
		return nil, classify("fetch restaurants", err)
	}
	return out, nil
}
