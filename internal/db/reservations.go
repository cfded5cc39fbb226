package db

import (
	"context"

	"github.com/google/uuid"
)

// CreateReservation inserts a reservation under a freshly generated id.
// Unknown customer/restaurant ids and a second booking of the same
// (customer, restaurant) pair come back as *ConstraintViolation.
func (d *DB) CreateReservation(ctx context.Context, in NewReservation) (Reservation, error) {
	r := Reservation{
		ID:           uuid.New(),
		Date:         in.Date,
		PartyCount:   in.PartyCount,
		RestaurantID: in.RestaurantID,
		CustomerID:   in.CustomerID,
	}
	_, err := d.ExecContext(ctx, d.Rebind(`
		INSERT INTO reservations (id, date, party_count, restaurant_id, customer_id)
		VALUES (?, ?, ?, ?, ?)`),
		r.ID, r.Date, r.PartyCount, r.RestaurantID, r.CustomerID)
	if err != nil {
		return Reservation{}, classify("create reservation", err)
	}
	return r, nil
}

func (d *DB) FetchReservations(ctx context.Context) ([]Reservation, error) {
	out := []Reservation{}
	if err := d.SelectContext(ctx, &out,
		`SELECT id, date, party_count, restaurant_id, customer_id FROM reservations`); err != nil {
		return nil, classify("fetch reservations", err)
	}
	return out, nil
}

// DeleteReservation removes the reservation with the given id.
// Deleting an absent id is a no-op.
func (d *DB) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if _, err := d.ExecContext(ctx, d.Rebind(`DELETE FROM reservations WHERE id = ?`), id); err != nil {
		return classify("delete reservation", err)
	}
	return nil
}

// DeleteCustomerReservation removes the reservation only when it belongs to
// customerID. It reports whether a row was deleted; absent or foreign
// reservations are left untouched and are not an error.
func (d *DB) DeleteCustomerReservation(ctx context.Context, customerID, id uuid.UUID) (bool, error) {
	res, err := d.ExecContext(ctx, d.Rebind(`DELETE FROM reservations WHERE id = ? AND customer_id = ?`), id, customerID)
	if err != nil {
		return false, classify("delete reservation", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete reservation", err)
	}
	return n > 0, nil
}
