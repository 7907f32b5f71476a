// Package ws streams processed ticks to websocket observers. The hub fans
// each tick frame out to every connected client; observers are read-only and
// anything they send is discarded.
package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"starweave/internal/domain/engine"
	"starweave/internal/domain/world"
)

// TickFrame is the JSON envelope written to observers after every tick.
type TickFrame struct {
	WorldID string            `json:"world_id"`
	Tick    int64             `json:"tick"`
	Events  []world.GameEvent `json:"events"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected observers and the broadcast channel.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run is the hub's event loop. It blocks and is meant to be started as a
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Full send buffer means a stalled client; drop it.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// BroadcastResult encodes a tick result and queues it for every observer.
// It is shaped as a loop listener.
func (h *Hub) BroadcastResult(res engine.Result) {
	frame := TickFrame{
		WorldID: res.World.ID,
		Tick:    res.ProcessedTick,
		Events:  res.Events,
	}
	b, err := json.Marshal(frame)
	if err != nil {
		log.Printf("ws: encode tick frame: %v", err)
		return
	}
	select {
	case h.broadcast <- b:
	default:
		// The hub loop is behind; skipping a frame is better than blocking
		// the tick listener.
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and attaches the connection to the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}

	c := &client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	hub.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
