package app

import (
	"context"
	"sync"
	"time"

	"realtime_chat_service/internal/chat/domain"
	userdomain "realtime_chat_service/internal/user/domain"
	userrepo "realtime_chat_service/internal/user/repository"
	"realtime_chat_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PresenceRegistry in-memory userID to connection mapping, the
// authoritative live state. The user collection mirror is advisory
// and rebuilt from scratch on process restart.
type PresenceRegistry struct {
	mu      sync.Mutex
	byUser  map[string]domain.EventWriter
	owner   map[domain.EventWriter]string
	handles map[domain.EventWriter]string

	userRepo userrepo.UserRepository
	hub      Broadcaster
}

// NewPresenceRegistry create a PresenceRegistry
func NewPresenceRegistry(userRepo userrepo.UserRepository, hub Broadcaster) *PresenceRegistry {
	return &PresenceRegistry{
		byUser:   make(map[string]domain.EventWriter),
		owner:    make(map[domain.EventWriter]string),
		handles:  make(map[domain.EventWriter]string),
		userRepo: userRepo,
		hub:      hub,
	}
}

// Join record the mapping, mark the user online and tell everyone else.
// A prior handle for the same user is overwritten, last writer wins.
// Mirror failures are logged and swallowed, presence is best-effort.
func (p *PresenceRegistry) Join(ctx context.Context, userID string, w domain.EventWriter) {
	p.mu.Lock()
	p.byUser[userID] = w
	p.owner[w] = userID
	if _, ok := p.handles[w]; !ok {
		p.handles[w] = uuid.New().String()
	}
	socketID := p.handles[w]
	p.mu.Unlock()

	now := time.Now()
	if err := p.userRepo.UpdatePresence(ctx, userID, userdomain.PresenceUpdate{
		IsOnline: true,
		LastSeen: now,
		SocketID: socketID,
	}); err != nil {
		logger.Log.Errorf("presence mirror join err :", err, zap.String("userID", userID))
	}

	p.hub.BroadcastAll(w, domain.WSEvent{
		Event:   domain.EventUserOnline,
		Payload: domain.PresencePayload{UserID: userID, IsOnline: true},
	})

	logger.Log.Info("user online", zap.String("userID", userID))
}

// Leave clear the mapping and broadcast offline. No-op when the
// handle never joined. A handle that was already superseded by a
// newer connection for the same user is dropped silently.
func (p *PresenceRegistry) Leave(ctx context.Context, w domain.EventWriter) {
	p.mu.Lock()
	userID, ok := p.owner[w]
	if !ok {
		p.mu.Unlock()
		return
	}
	delete(p.owner, w)
	delete(p.handles, w)

	current := p.byUser[userID] == w
	if current {
		delete(p.byUser, userID)
	}
	p.mu.Unlock()

	if !current {
		return
	}

	lastSeen := time.Now()
	if err := p.userRepo.UpdatePresence(ctx, userID, userdomain.PresenceUpdate{
		IsOnline: false,
		LastSeen: lastSeen,
	}); err != nil {
		logger.Log.Errorf("presence mirror leave err :", err, zap.String("userID", userID))
	}

	p.hub.BroadcastAll(w, domain.WSEvent{
		Event:   domain.EventUserOffline,
		Payload: domain.PresencePayload{UserID: userID, IsOnline: false, LastSeen: &lastSeen},
	})

	logger.Log.Info("user offline", zap.String("userID", userID))
}

// IsOnline report live state for the user
func (p *PresenceRegistry) IsOnline(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byUser[userID]
	return ok
}
