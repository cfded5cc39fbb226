package customers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
)

// Create adds a customer. The id is always generated server side.
func (h *Handler) Create(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		common.BadRequest(c, "invalid JSON body")
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		common.BadRequest(c, "name is required (at most 100 characters)")
		return
	}

	cust, err := h.store.CreateCustomer(c.Request.Context(), name)
	if err != nil {
		common.AbortWithStoreError(c, h.log, err)
		return
	}
	h.log.Info("customer created", zap.Stringer("customer_id", cust.ID))
	c.JSON(http.StatusCreated, cust)
}
