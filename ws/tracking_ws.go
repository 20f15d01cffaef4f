package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/utils"
)

// Event is one push to a storefront client: a notification chime, a toast
// or a cue that the tracked orders changed.
type Event struct {
	Type    string `json:"type"` // "chime" | "toast" | "orders-changed"
	Message string `json:"message,omitempty"`
}

type subscription struct {
	conn      *websocket.Conn
	deviceKey string
}

type push struct {
	deviceKey string
	event     Event
}

// TrackingHub fans tracking events out to the websocket connections of
// each device. It implements the services.Notifier contract.
type TrackingHub struct {
	clients    map[string]map[*websocket.Conn]bool // device key -> connections
	register   chan subscription
	unregister chan subscription
	events     chan push
	log        *logrus.Logger
}

func NewTrackingHub(log *logrus.Logger) *TrackingHub {
	return &TrackingHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		events:     make(chan push, 16),
		log:        log,
	}
}

// Run owns the client map; call it once in a goroutine.
func (h *TrackingHub) Run() {
	for {
		select {
		case sub := <-h.register:
			if h.clients[sub.deviceKey] == nil {
				h.clients[sub.deviceKey] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.deviceKey][sub.conn] = true

		case sub := <-h.unregister:
			if _, ok := h.clients[sub.deviceKey][sub.conn]; ok {
				delete(h.clients[sub.deviceKey], sub.conn)
				sub.conn.Close()
			}

		case p := <-h.events:
			for conn := range h.clients[p.deviceKey] {
				if err := conn.WriteJSON(p.event); err != nil {
					h.log.Warnf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[p.deviceKey], conn)
				}
			}
		}
	}
}

// Push queues an event for every connection of the device. Never blocks
// the caller; if the hub is saturated the event is dropped (cues are
// best-effort, the poll keeps state fresh).
func (h *TrackingHub) Push(deviceKey string, ev Event) {
	select {
	case h.events <- push{deviceKey: deviceKey, event: ev}:
	default:
		h.log.Warn("tracking hub saturated, dropping event")
	}
}

// Chime and Toast satisfy services.Notifier.
func (h *TrackingHub) Chime(deviceKey string) { h.Push(deviceKey, Event{Type: "chime"}) }
func (h *TrackingHub) Toast(deviceKey, message string) {
	h.Push(deviceKey, Event{Type: "toast", Message: message})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /ws/tracking for the requesting device.
func (h *TrackingHub) HandleWebSocket(c *gin.Context) {
	deviceKey := utils.DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing device key"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{conn: conn, deviceKey: deviceKey}
	h.register <- sub

	go h.drain(sub)
}

// drain discards inbound frames until the client goes away; the tracking
// channel is push-only.
func (h *TrackingHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
