package reservations

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/db"
)

// Package reservations provides reservation HTTP handlers.
//
// This file defines the handler type and constructor only.
// The HTTP methods are implemented in dedicated files:
// - list.go:   Handler.List
// - create.go: Handler.Create
// - delete.go: Handler.Delete

// Store is what the handlers need from the persistence layer.
type Store interface {
	CreateReservation(ctx context.Context, in db.NewReservation) (db.Reservation, error)
	FetchReservations(ctx context.Context) ([]db.Reservation, error)
	DeleteCustomerReservation(ctx context.Context, customerID, id uuid.UUID) (bool, error)
}

// Handler wires reservation endpoints to the data store.
type Handler struct {
	store Store
	log   *zap.Logger
}

// New returns a new reservations handler.
func New(s Store, log *zap.Logger) *Handler { return &Handler{store: s, log: log} }
