package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Conn is the middleman between one websocket connection and the hub.
// The rooms set is owned by the hub's Run goroutine.
type Conn struct {
	id  string
	hub *Hub
	ws  *websocket.Conn

	rooms map[string]struct{}

	send      chan Message
	closeOnce sync.Once
}

func NewConn(hub *Hub, ws *websocket.Conn) *Conn {
	return &Conn{
		id:    uuid.NewString(),
		hub:   hub,
		ws:    ws,
		rooms: make(map[string]struct{}),
		send:  make(chan Message, sendBuffer),
	}
}

// trySend is fire-and-forget: a subscriber that cannot keep up loses
// the event rather than stalling the hub.
func (c *Conn) trySend(msg Message) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Conn) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// Start begins the read/write pumps.
func (c *Conn) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump consumes join requests until the connection dies, then
// unregisters (the hub drops all room memberships).
func (c *Conn) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("realtime: unexpected close:", err)
			}
			return
		}

		switch msg.Event {
		case EventJoinDate, EventJoinMonth:
			var key string
			if err := json.Unmarshal(msg.Data, &key); err != nil || key == "" {
				continue
			}
			c.hub.Join(c, Room(key))
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
