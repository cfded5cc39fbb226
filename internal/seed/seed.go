package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jeomhps/reservation-planner/internal/db"
)

//go:embed default.yml
var defaultFixture []byte

// Fixture is the sample data applied after a schema reset.
//
// Customers and restaurants accept either plain names or {name: ...} maps:
//
//	customers: [John, Jane]
//	restaurants:
//	  - name: Pasta Palace
//	reservations:
//	  - customer: John
//	    restaurant: Pasta Palace
//	    date: 2024-04-01
//	    party_count: 4
type Fixture struct {
	Customers    names                `yaml:"customers"`
	Restaurants  names                `yaml:"restaurants"`
	Reservations []FixtureReservation `yaml:"reservations"`
}

// FixtureReservation refers to customers and restaurants by name.
type FixtureReservation struct {
	Customer   string `yaml:"customer"`
	Restaurant string `yaml:"restaurant"`
	Date       string `yaml:"date"`
	PartyCount int    `yaml:"party_count"`
}

// Result counts the rows a fixture created.
type Result struct {
	Customers    int `json:"customers"`
	Restaurants  int `json:"restaurants"`
	Reservations int `json:"reservations"`
}

type names []string

func (n *names) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list", node.Line)
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			out = append(out, strings.TrimSpace(item.Value))
		case yaml.MappingNode:
			var m struct {
				Name string `yaml:"name"`
			}
			if err := item.Decode(&m); err != nil {
				return err
			}
			out = append(out, strings.TrimSpace(m.Name))
		default:
			return fmt.Errorf("line %d: expected a name or {name: ...}", item.Line)
		}
	}
	*n = out
	return nil
}

// Default returns the built-in fixture.
func Default() (Fixture, error) { return Parse(defaultFixture) }

// Load reads a fixture file; an empty path means the built-in fixture.
func Load(path string) (Fixture, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML fixture.
func Parse(b []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, f.validate()
}

func (f Fixture) validate() error {
	var errs []error
	customers := map[string]bool{}
	for _, n := range f.Customers {
		if n == "" {
			errs = append(errs, errors.New("customer with empty name"))
		}
		customers[n] = true
	}
	restaurants := map[string]bool{}
	for _, n := range f.Restaurants {
		if n == "" {
			errs = append(errs, errors.New("restaurant with empty name"))
		}
		restaurants[n] = true
	}
	for i, r := range f.Reservations {
		if !customers[r.Customer] {
			errs = append(errs, fmt.Errorf("reservation %d: unknown customer %q", i, r.Customer))
		}
		if !restaurants[r.Restaurant] {
			errs = append(errs, fmt.Errorf("reservation %d: unknown restaurant %q", i, r.Restaurant))
		}
		if _, err := db.ParseDate(r.Date); err != nil {
			errs = append(errs, fmt.Errorf("reservation %d: %w", i, err))
		}
		if r.PartyCount <= 0 {
			errs = append(errs, fmt.Errorf("reservation %d: party_count must be positive", i))
		}
	}
	return errors.Join(errs...)
}

// Store is the subset of the persistence layer the seeder writes through.
type Store interface {
	CreateCustomer(ctx context.Context, name string) (db.Customer, error)
	CreateRestaurant(ctx context.Context, name string) (db.Restaurant, error)
	CreateReservation(ctx context.Context, in db.NewReservation) (db.Reservation, error)
}

// Apply creates every fixture row. Names that appear twice resolve to the
// last record created under that name.
func Apply(ctx context.Context, s Store, f Fixture) (Result, error) {
	var res Result

	customers := make(map[string]db.Customer, len(f.Customers))
	for _, n := range f.Customers {
		c, err := s.CreateCustomer(ctx, n)
		if err != nil {
			return res, err
		}
		customers[n] = c
		res.Customers++
	}

	restaurants := make(map[string]db.Restaurant, len(f.Restaurants))
	for _, n := range f.Restaurants {
		r, err := s.CreateRestaurant(ctx, n)
		if err != nil {
			return res, err
		}
		restaurants[n] = r
		res.Restaurants++
	}

	for _, fr := range f.Reservations {
		date, err := db.ParseDate(fr.Date)
		if err != nil {
			return res, err
		}
		c, ok := customers[fr.Customer]
		if !ok {
			return res, fmt.Errorf("unknown customer %q", fr.Customer)
		}
		r, ok := restaurants[fr.Restaurant]
		if !ok {
			return res, fmt.Errorf("unknown restaurant %q", fr.Restaurant)
		}
		if _, err := s.CreateReservation(ctx, db.NewReservation{
			Date:         date,
			PartyCount:   fr.PartyCount,
			RestaurantID: r.ID,
			CustomerID:   c.ID,
		}); err != nil {
			return res, err
		}
		res.Reservations++
	}

	return res, nil
}

// ResetStore can rebuild the schema under a store-wide lock.
type ResetStore interface {
	Store
	WithLock(ctx context.Context, name string, fn func(context.Context) error) error
	InitializeSchema(ctx context.Context) error
}

// ResetLock names the advisory lock taken around a reset.
const ResetLock = "reservation-planner:schema-reset"

// Reset drops and recreates the schema, then applies f unless it is nil.
// Concurrent resets against the same database are serialized.
func Reset(ctx context.Context, s ResetStore, f *Fixture) (Result, error) {
	var res Result
	err := s.WithLock(ctx, ResetLock, func(ctx context.Context) error {
		if err := s.InitializeSchema(ctx); err != nil {
			return err
		}
		if f == nil {
			return nil
		}
		var err error
		res, err = Apply(ctx, s, *f)
		return err
	})
	return res, err
}
