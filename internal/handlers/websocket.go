package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades authenticated clients into the booking event hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")
		role := c.GetString("role")

		hub.ServeWS(c.Writer, c.Request, linkedID, role)
	}
}
