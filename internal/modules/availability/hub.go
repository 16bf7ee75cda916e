package availability

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is pushed to every connected client whenever the ledger changes,
// so open room pages can refresh their date pickers without polling.
type Event struct {
	Event  string `json:"event"`
	RoomID int64  `json:"room_id"`
	Date   string `json:"date"`
}

const (
	EventReserved = "date_reserved"
	EventReleased = "date_released"
)

type Hub struct {
	connections map[int64]*websocket.Conn
	nextID      int64
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.connections[h.nextID] = conn
	return h.nextID
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[id]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, id)
	}
}

// Broadcast sends the event to every client; connections that fail a
// write are dropped.
func (h *Hub) Broadcast(ev Event) {
	h.mutex.RLock()
	conns := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) DateReserved(roomID int64, date string) {
	h.Broadcast(Event{Event: EventReserved, RoomID: roomID, Date: date})
}

func (h *Hub) DateReleased(roomID int64, date string) {
	h.Broadcast(Event{Event: EventReleased, RoomID: roomID, Date: date})
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
