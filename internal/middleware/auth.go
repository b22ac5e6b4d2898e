package middleware

import (
	"strings"

	"github.com/drivehive/drivehive-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// WebSocket clients pass the token as a query parameter
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"success": false, "error": "Authorization header or token query parameter required"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"success": false, "error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}

		// A validly-signed token may still be the wrong kind (e.g. a refresh
		// token carries no linkedId); reject instead of panicking.
		userID, okID := claims["id"].(float64)
		linkedID, okLinked := claims["linkedId"].(float64)
		role, okRole := claims["role"].(string)
		if !okID || !okLinked || !okRole {
			c.JSON(401, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set("userId", uint(userID))
		c.Set("linkedId", uint(linkedID))
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole guards routes that only one kind of account may call.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(403, gin.H{"success": false, "error": "Forbidden"})
		c.Abort()
	}
}
