package customers

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/db"
)

// Package customers provides the customer HTTP handlers.
// The HTTP methods live in list.go and create.go.

// Store is what the handlers need from the persistence layer.
type Store interface {
	CreateCustomer(ctx context.Context, name string) (db.Customer, error)
	FetchCustomers(ctx context.Context) ([]db.Customer, error)
}

// Handler wires customer endpoints to the data store.
type Handler struct {
	store Store
	log   *zap.Logger
}

// New returns a new customers handler.
func New(s Store, log *zap.Logger) *Handler { return &Handler{store: s, log: log} }
