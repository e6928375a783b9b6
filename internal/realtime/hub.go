package realtime

import (
	"context"
	"log"
)

type joinRequest struct {
	conn *Conn
	room string
}

type broadcast struct {
	room string
	msg  Message
}

// Hub owns room membership and fans events out to subscribed
// connections. All membership state is touched only by the Run
// goroutine; handlers talk to it through channels.
type Hub struct {
	conns map[*Conn]struct{}
	rooms map[string]map[*Conn]struct{}

	register   chan *Conn
	unregister chan *Conn
	join       chan joinRequest
	events     chan broadcast
}

func NewHub() *Hub {
	return &Hub{
		conns:      make(map[*Conn]struct{}),
		rooms:      make(map[string]map[*Conn]struct{}),
		register:   make(chan *Conn),
		unregister: make(chan *Conn),
		join:       make(chan joinRequest),
		events:     make(chan broadcast, 256),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.conns[c] = struct{}{}
			log.Printf("realtime: conn %s connected (%d total)", c.id, len(h.conns))

		case c := <-h.unregister:
			h.drop(c)
			log.Printf("realtime: conn %s disconnected (%d total)", c.id, len(h.conns))

		case req := <-h.join:
			h.joinRoom(req.conn, req.room)

		case ev := <-h.events:
			h.fanOut(ev.room, ev.msg)
		}
	}
}

// Publish queues an event for every connection in the room. Non-blocking:
// when the event queue is full the event is dropped, never the request
// path.
func (h *Hub) Publish(room string, event string, payload any) {
	select {
	case h.events <- broadcast{room: room, msg: Message{Event: event, Data: payload}}:
		countBroadcast(event)
	default:
		log.Println("realtime: event queue full, dropping", event, "for", room)
	}
}

func (h *Hub) Register(c *Conn) {
	h.register <- c
}

func (h *Hub) Unregister(c *Conn) {
	h.unregister <- c
}

func (h *Hub) Join(c *Conn, room string) {
	h.join <- joinRequest{conn: c, room: room}
}

// --------------------------------------------------
// Run-goroutine internals
// --------------------------------------------------

func (h *Hub) joinRoom(c *Conn, room string) {
	if _, ok := h.conns[c]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Conn]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
	log.Printf("realtime: conn %s joined %s (%d in room)", c.id, room, len(members))
}

// drop removes the connection from every room it joined, so a
// disconnect never leaves stale fan-out targets behind.
func (h *Hub) drop(c *Conn) {
	for room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.rooms = make(map[string]struct{})
	delete(h.conns, c)
	c.closeSend()
}

func (h *Hub) fanOut(room string, msg Message) {
	for c := range h.rooms[room] {
		c.trySend(msg)
	}
}

func (h *Hub) closeAll() {
	for c := range h.conns {
		h.drop(c)
	}
}
