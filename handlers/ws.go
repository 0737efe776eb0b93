package handlers

import (
	"net/http"

	"turnia/services/alerts"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AlertsHandler exposes the realtime alert feed and its REST fallbacks.
type AlertsHandler struct {
	Hub *alerts.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler handles GET /api/alerts/ws. Upgrades to a WebSocket and
// registers the connection on the hub; pending alerts are replayed on attach.
func (h *AlertsHandler) EventsHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", zap.String("account", id), zap.Error(err))
		return
	}

	h.Hub.Register(id, ws)
}

// PendingAlertsHandler handles GET /api/alerts/pending. Professional only;
// lets a freshly opened dashboard catch up without waiting for the socket.
func (h *AlertsHandler) PendingAlertsHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, h.Hub.PendingAlerts(id))
}

// DismissAlertHandler handles DELETE /api/alerts/:bookingID. Professional only.
func (h *AlertsHandler) DismissAlertHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.Hub.ResolveAlert(id, c.Param("bookingID"))
	c.JSON(http.StatusOK, gin.H{"message": "alert dismissed"})
}
