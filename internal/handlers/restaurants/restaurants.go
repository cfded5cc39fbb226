package restaurants

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/db"
)

// Package restaurants provides the restaurant HTTP handlers.
// The HTTP methods live in list.go and create.go.

// Store is what the handlers need from the persistence layer.
type Store interface {
	CreateRestaurant(ctx context.Context, name string) (db.Restaurant, error)
	FetchRestaurants(ctx context.Context) ([]db.Restaurant, error)
}

// Handler wires restaurant endpoints to the data store.
type Handler struct {
	store Store
	log   *zap.Logger
}

// New returns a new restaurants handler.
func New(s Store, log *zap.Logger) *Handler { return &Handler{store: s, log: log} }
