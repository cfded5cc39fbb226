package restaurants

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
)

// List returns every restaurant.
func (h *Handler) List(c *gin.Context) {
	out, err := h.store.FetchRestaurants(c.Request.Context())
	if err != nil {
		common.AbortWithStoreError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
