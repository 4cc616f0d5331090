package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/zapshift/zapshift-backend/internal/services"
)

// WebSocketHandler upgrades the request and streams parcel status
// events for the verified email.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		services.HandleWebSocket(hub, c.Writer, c.Request, email)
	}
}
