package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by JWTAuth.
const (
	UserKey  = "user"
	AdminKey = "is_admin"
)

// JWTAuth accepts HS256 bearer tokens signed with secret and stores the
// subject and admin flag on the context.
func JWTAuth(secret string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Missing Bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(auth[len("Bearer "):])
		claims := jwt.MapClaims{}
		tok, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid token"})
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Invalid subject"})
			return
		}
		c.Set(UserKey, sub)
		c.Set(AdminKey, hasRole(claims, "admin"))
		c.Next()
	}
}

func hasRole(claims jwt.MapClaims, role string) bool {
	arr, ok := claims["roles"].([]any)
	if !ok {
		return false
	}
	for _, v := range arr {
		if s, ok := v.(string); ok && s == role {
			return true
		}
	}
	return false
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(AdminKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Missing required role: admin"})
			return
		}
		c.Next()
	}
}
