package live

import (
	"encoding/json"
	"log"
	"sync"

	"agromandi/globals"
	"agromandi/mq"
	"agromandi/rdx"
)

// Client is one connected dashboard. Room is the subscriber's user id.
type Client struct {
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans order events out to connected dashboards, one room per user.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Register and Unregister are used by the websocket handler and tests.
// Each send also watches done so callers never block on a stopped hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish sends raw bytes to every client in a room.
func (h *Hub) Publish(room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.done:
	}
}

// StartOrderEventWorker relays order events from Redis pub/sub into the hub.
// Each event reaches the farmer's room and the buyer's room.
func StartOrderEventWorker(hub *Hub) {
	sub := rdx.Conn.Subscribe(globals.Ctx, mq.OrderChannel)
	ch := sub.Channel()

	log.Println("live: listening for order events")

	for msg := range ch {
		var event mq.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("live: failed to parse event: %v", err)
			continue
		}

		data := []byte(msg.Payload)
		if event.FarmerID != "" {
			hub.Publish(event.FarmerID, data)
		}
		if event.BuyerID != "" && event.BuyerID != event.FarmerID {
			hub.Publish(event.BuyerID, data)
		}
	}
}
