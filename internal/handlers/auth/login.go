package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
)

const issuer = "reservation-planner"

// Login issues a short-lived access token for valid credentials.
// Flow:
// 1) Validate payload
// 2) Check username and password against the configured admin
// 3) Build JWT and return token response
func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Username == "" || in.Password == "" {
		common.BadRequest(c, "username and password are required")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(h.username)) == 1
	if !h.Enabled() || !userOK || bcrypt.CompareHashAndPassword(h.passwordHash, []byte(in.Password)) != nil {
		h.log.Warn("login rejected", zap.String("username", in.Username))
		common.Abort(c, http.StatusUnauthorized, "invalid_grant", "invalid credentials")
		return
	}

	signed, err := h.issue(time.Now())
	if err != nil {
		h.log.Error("sign token", zap.Error(err))
		common.Abort(c, http.StatusInternalServerError, "server_error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int(TokenTTL.Seconds()),
	})
}

func (h *Handler) issue(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   issuer,
		"sub":   h.username,
		"roles": []string{"admin"},
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
}
