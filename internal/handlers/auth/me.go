package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeomhps/reservation-planner/internal/middleware"
)

// Me returns a minimal profile for the authenticated caller.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": c.GetString(middleware.UserKey),
		"is_admin": c.GetBool(middleware.AdminKey),
	})
}
