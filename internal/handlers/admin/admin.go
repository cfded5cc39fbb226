package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
	"github.com/Jeomhps/reservation-planner/internal/middleware"
	"github.com/Jeomhps/reservation-planner/internal/seed"
)

// Package admin holds destructive maintenance endpoints. Routes are expected
// to sit behind JWTAuth and RequireAdmin.

// Handler resets the store and reseeds it from fixture.
type Handler struct {
	store   seed.ResetStore
	fixture seed.Fixture
	log     *zap.Logger
}

// New returns an admin handler seeding with fixture.
func New(s seed.ResetStore, fixture seed.Fixture, log *zap.Logger) *Handler {
	return &Handler{store: s, fixture: fixture, log: log}
}

// Reset drops and recreates all tables. Seeding runs unless ?seed=false.
func (h *Handler) Reset(c *gin.Context) {
	withSeed := true
	if v := c.Query("seed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			common.BadRequest(c, "seed must be true or false")
			return
		}
		withSeed = b
	}

	var f *seed.Fixture
	if withSeed {
		f = &h.fixture
	}
	res, err := seed.Reset(c.Request.Context(), h.store, f)
	if err != nil {
		common.AbortWithStoreError(c, h.log, err)
		return
	}

	h.log.Info("schema reset",
		zap.String("by", c.GetString(middleware.UserKey)),
		zap.Bool("seeded", withSeed),
		zap.Int("customers", res.Customers),
		zap.Int("restaurants", res.Restaurants),
		zap.Int("reservations", res.Reservations),
	)
	c.JSON(http.StatusOK, res)
}
