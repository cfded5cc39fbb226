package reservations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
)

// Delete removes a reservation owned by the customer in the path.
// Always 204 on success: a reservation that is absent, or that belongs to
// another customer, is left alone and reported the same way.
func (h *Handler) Delete(c *gin.Context) {
	customerID, ok := common.ParamUUID(c, "id")
	if !ok {
		return
	}
	id, ok := common.ParamUUID(c, "reservation_id")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteCustomerReservation(c.Request.Context(), customerID, id)
	if err != nil {
		common.AbortWithStoreError(c, h.log, err)
		return
	}
	if deleted {
		h.log.Info("reservation deleted", zap.Stringer("reservation_id", id), zap.Stringer("customer_id", customerID))
	} else {
		h.log.Debug("reservation delete was a no-op", zap.Stringer("reservation_id", id), zap.Stringer("customer_id", customerID))
	}
	c.Status(http.StatusNoContent)
}
