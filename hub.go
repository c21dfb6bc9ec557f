package main

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// WSUpdate is the one message shape pushed to clients: a fresh snapshot
// after a mutation, or a narration fragment.
type WSUpdate struct {
	Type      string    `json:"type"` // "snapshot" or "narration"
	Snapshot  *Snapshot `json:"snapshot,omitempty"`
	Narration string    `json:"narration,omitempty"`
	Final     bool      `json:"final,omitempty"`
}

// Client is one websocket connection watching one room.
type Client struct {
	conn     *websocket.Conn
	roomCode string
	writeMu  sync.Mutex // gorilla/websocket requires serialized writes
}

// Hub fans session updates out to the clients of each room.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*Client
}

func newHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*Client),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.conn] = c
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("WebSocket client joined room %s. Total: %d", c.roomCode, total)
	DebugLog("hub.register", "client connected to room %s", c.roomCode)
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("WebSocket client disconnected. Total: %d", total)
}

// stop closes every connection, for shutdown and tests.
func (h *Hub) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// broadcastSnapshot pushes the post-mutation state to everyone in the room.
func (h *Hub) broadcastSnapshot(snap Snapshot) {
	h.send(snap.RoomCode, WSUpdate{Type: "snapshot", Snapshot: &snap})
}

// broadcastNarration streams narrator text into the room. Fragments arrive
// with final=false; the assembled text is re-sent once with final=true.
func (h *Hub) broadcastNarration(roomCode, text string, final bool) {
	h.send(roomCode, WSUpdate{Type: "narration", Narration: text, Final: final})
}

func (h *Hub) send(roomCode string, update WSUpdate) {
	message, err := json.Marshal(update)
	if err != nil {
		log.Printf("hub: marshal update for room %s: %v", roomCode, err)
		return
	}
	LogWSMessage("OUT", roomCode, string(message))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, client := range h.clients {
		if client.roomCode != roomCode {
			continue
		}
		client.writeMu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, message)
		client.writeMu.Unlock()
		if err != nil {
			log.Printf("WebSocket write error in room %s: %v", roomCode, err)
		}
	}
}
