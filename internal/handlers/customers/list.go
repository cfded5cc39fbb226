package customers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
)

// List returns every customer.
func (h *Handler) List(c *gin.Context) {
	out, err := h.store.FetchCustomers(c.Request.Context())
	if err != nil {
		common.AbortWithStoreError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
