package alerts

import (
	"encoding/json"
	"sync"
	"time"

	"turnia/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event names pushed over the realtime channel.
const (
	EventNewBookingAlert = "new_booking_alert"
	EventNotification    = "notification"
	EventBookingResponse = "booking_response_received"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Envelope wraps every event sent over the socket.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub fans events out to the websocket connections of each account and keeps
// the transient pending-alert list per professional. Alerts are not persisted:
// they exist from push receipt until accept/reject/dismiss.
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]map[*connection]struct{} // accountID -> open connections
	pending map[string][]models.BookingAlert    // professionalID -> undecided alerts
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:   make(map[string]map[*connection]struct{}),
		pending: make(map[string][]models.BookingAlert),
		logger:  logger,
	}
}

type connection struct {
	ws   *websocket.Conn
	send chan []byte
}

// Register attaches a websocket connection to an account and starts its
// read/write pumps. It returns once the connection is torn down.
func (h *Hub) Register(accountID string, ws *websocket.Conn) {
	conn := &connection{ws: ws, send: make(chan []byte, 16)}

	h.mu.Lock()
	if h.conns[accountID] == nil {
		h.conns[accountID] = make(map[*connection]struct{})
	}
	h.conns[accountID][conn] = struct{}{}
	h.mu.Unlock()

	go conn.writePump()

	// Replay undecided alerts so a reconnecting professional sees them.
	for _, alert := range h.PendingAlerts(accountID) {
		h.sendTo(conn, EventNewBookingAlert, alert)
	}

	conn.readPump()

	h.mu.Lock()
	delete(h.conns[accountID], conn)
	if len(h.conns[accountID]) == 0 {
		delete(h.conns, accountID)
	}
	h.mu.Unlock()
	close(conn.send)
}

// readPump discards inbound frames; the channel is push-only. It keeps the
// connection alive via pong deadlines and exits on close or error.
func (c *connection) readPump() {
	c.ws.SetReadLimit(1024)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) sendTo(conn *connection, event string, payload any) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("alerts: failed to marshal envelope", zap.Error(err))
		return
	}
	select {
	case conn.send <- data:
	default:
		// Slow consumer; drop rather than block the hub.
	}
}

// Publish delivers an event to every open connection of an account.
func (h *Hub) Publish(accountID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns[accountID] {
		h.sendTo(conn, event, payload)
	}
}

// PushAlert records a pending alert for a professional and pushes it out.
func (h *Hub) PushAlert(professionalID string, alert models.BookingAlert) {
	h.mu.Lock()
	h.pending[professionalID] = append(h.pending[professionalID], alert)
	h.mu.Unlock()

	h.Publish(professionalID, EventNewBookingAlert, alert)
}

// ResolveAlert drops the pending alert for a booking, if present. Called when
// the professional accepts, rejects, or dismisses it.
func (h *Hub) ResolveAlert(professionalID, bookingID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.pending[professionalID][:0]
	for _, alert := range h.pending[professionalID] {
		if alert.BookingID != bookingID {
			kept = append(kept, alert)
		}
	}
	if len(kept) == 0 {
		delete(h.pending, professionalID)
		return
	}
	h.pending[professionalID] = kept
}

// PendingAlerts returns a copy of the undecided alerts for a professional.
func (h *Hub) PendingAlerts(professionalID string) []models.BookingAlert {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]models.BookingAlert, len(h.pending[professionalID]))
	copy(out, h.pending[professionalID])
	return out
}
