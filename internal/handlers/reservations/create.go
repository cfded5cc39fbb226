package reservations

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/db"
	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
)

// Create books a reservation for the customer named in the path.
// Flow:
// 1) Parse customer id from the path and validate the payload
// 2) Reject a body customer_id that disagrees with the path
// 3) Insert; the store enforces references and the one-per-pair rule
func (h *Handler) Create(c *gin.Context) {
	customerID, ok := common.ParamUUID(c, "id")
	if !ok {
		return
	}

	var in struct {
		Date         *db.Date   `json:"date"`
		PartyCount   *int       `json:"party_count"`
		RestaurantID *uuid.UUID `json:"restaurant_id"`
		CustomerID   *uuid.UUID `json:"customer_id"` // optional, must match the path
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		common.BadRequest(c, err.Error())
		return
	}
	switch {
	case in.Date == nil:
		common.BadRequest(c, "date is required (YYYY-MM-DD)")
		return
	case in.PartyCount == nil || *in.PartyCount <= 0 || *in.PartyCount > math.MaxInt32:
		common.BadRequest(c, "party_count must be a positive 32-bit integer")
		return
	case in.RestaurantID == nil:
		common.BadRequest(c, "restaurant_id is required")
		return
	case in.CustomerID != nil && *in.CustomerID != customerID:
		common.BadRequest(c, "customer_id in body does not match the path")
		return
	}

	res, err := h.store.CreateReservation(c.Request.Context(), db.NewReservation{
		Date:         *in.Date,
		PartyCount:   *in.PartyCount,
		RestaurantID: *in.RestaurantID,
		CustomerID:   customerID,
	})
	if err != nil {
		common.AbortWithStoreError(c, h.log, err)
		return
	}

	h.log.Info("reservation created",
		zap.Stringer("reservation_id", res.ID),
		zap.Stringer("customer_id", res.CustomerID),
		zap.Stringer("restaurant_id", res.RestaurantID),
	)
	c.JSON(http.StatusCreated, res)
}
