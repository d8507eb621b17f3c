package middleware

import (
	"net/http"
	"strings"

	"rentbot-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JwtAuthMiddleware validates the bearer token and stores user_id and role
// on the request context.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return utils.ApiSecret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// JSON numbers decode as float64; convert back before storing.
		userIDFloat, okID := claims["user_id"].(float64)
		if !okID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token corrupt (user_id)"})
			c.Abort()
			return
		}

		c.Set("user_id", uint(userIDFloat))
		if role, okRole := claims["role"].(string); okRole {
			c.Set("role", role)
		}
		c.Next()
	}
}

// RequireAdmin gates the privileged admin group. The admin identity itself
// is established at login; this only checks the role claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
