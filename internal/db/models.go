package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Domain models. Column tags match the DDL in schema.go; JSON tags are the wire shape.

type Customer struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type Restaurant struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type Reservation struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Date         Date      `db:"date" json:"date"`
	PartyCount   int       `db:"party_count" json:"party_count"`
	RestaurantID uuid.UUID `db:"restaurant_id" json:"restaurant_id"`
	CustomerID   uuid.UUID `db:"customer_id" json:"customer_id"`
}

// NewReservation is the caller-supplied part of a reservation.
type NewReservation struct {
	Date         Date
	PartyCount   int
	RestaurantID uuid.UUID
	CustomerID   uuid.UUID
}

// DateLayout is the wire and storage format of a reservation date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, held as UTC midnight.
type Date struct{ time.Time }

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as YYYY-MM-DD, which every supported store accepts for DATE.
func (d Date) Value() (driver.Value, error) { return d.String(), nil }

// Scan accepts the representations drivers hand back for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanString(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("cannot scan %q into Date", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
