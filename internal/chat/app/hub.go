package app

import (
	"sync"

	"realtime_chat_service/internal/chat/domain"
)

// Broadcaster fan-out surface used by the pipeline and the relay
type Broadcaster interface {
	Broadcast(conversationID string, evt domain.WSEvent)
	BroadcastExcept(conversationID string, except domain.EventWriter, evt domain.WSEvent)
	BroadcastAll(except domain.EventWriter, evt domain.WSEvent)
}

// Hub room router: connection registry plus per-conversation
// membership sets. All maps are guarded by the mutex; membership
// is per-connection, not per-user.
type Hub struct {
	mu    sync.RWMutex
	conns map[domain.EventWriter]struct{}
	rooms map[string]map[domain.EventWriter]struct{}
}

// NewHub create an empty Hub
func NewHub() *Hub {
	return &Hub{
		conns: make(map[domain.EventWriter]struct{}),
		rooms: make(map[string]map[domain.EventWriter]struct{}),
	}
}

// Register track a live connection, done once at upgrade
func (h *Hub) Register(w domain.EventWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[w] = struct{}{}
}

// Unregister drop the connection and its room memberships
func (h *Hub) Unregister(w domain.EventWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, w)
	for id, members := range h.rooms {
		delete(members, w)
		if len(members) == 0 {
			delete(h.rooms, id)
		}
	}
}

// JoinRoom add the connection to the room, idempotent
func (h *Hub) JoinRoom(w domain.EventWriter, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[conversationID]
	if !ok {
		members = make(map[domain.EventWriter]struct{})
		h.rooms[conversationID] = members
	}
	members[w] = struct{}{}
}

// LeaveRoom remove the connection from the room, no-op if absent
func (h *Hub) LeaveRoom(w domain.EventWriter, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[conversationID]; ok {
		delete(members, w)
		if len(members) == 0 {
			delete(h.rooms, conversationID)
		}
	}
}

// InRoom report current membership
func (h *Hub) InRoom(w domain.EventWriter, conversationID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members, ok := h.rooms[conversationID]
	if !ok {
		return false
	}
	_, ok = members[w]
	return ok
}

// Broadcast deliver to every connection currently in the room
func (h *Hub) Broadcast(conversationID string, evt domain.WSEvent) {
	h.broadcastRoom(conversationID, nil, evt)
}

// BroadcastExcept deliver to every room member but the origin
func (h *Hub) BroadcastExcept(conversationID string, except domain.EventWriter, evt domain.WSEvent) {
	h.broadcastRoom(conversationID, except, evt)
}

// BroadcastAll deliver to every live connection but the origin,
// used for presence events
func (h *Hub) BroadcastAll(except domain.EventWriter, evt domain.WSEvent) {
	h.mu.RLock()
	targets := make([]domain.EventWriter, 0, len(h.conns))
	for w := range h.conns {
		if w != except {
			targets = append(targets, w)
		}
	}
	h.mu.RUnlock()

	for _, w := range targets {
		_ = w.WriteEvent(evt)
	}
}

func (h *Hub) broadcastRoom(conversationID string, except domain.EventWriter, evt domain.WSEvent) {
	h.mu.RLock()
	members := h.rooms[conversationID]
	targets := make([]domain.EventWriter, 0, len(members))
	for w := range members {
		if w != except {
			targets = append(targets, w)
		}
	}
	h.mu.RUnlock()

	// writes happen outside the lock, a slow client must not
	// stall membership mutation
	for _, w := range targets {
		_ = w.WriteEvent(evt)
	}
}
