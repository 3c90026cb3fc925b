package app

import (
	"testing"

	"realtime_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func TestHub_RoomBroadcastScopedToMembers(t *testing.T) {
	hub := NewHub()
	a := &fakeWriter{}
	b := &fakeWriter{}
	c := &fakeWriter{}

	hub.Register(a)
	hub.Register(b)
	hub.Register(c)
	hub.JoinRoom(a, "conv-1")
	hub.JoinRoom(b, "conv-1")
	hub.JoinRoom(c, "conv-2")

	hub.Broadcast("conv-1", domain.WSEvent{Event: domain.EventMessageNew})

	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)
	assert.Empty(t, c.Events())
}

func TestHub_BroadcastExceptSkipsOrigin(t *testing.T) {
	hub := NewHub()
	a := &fakeWriter{}
	b := &fakeWriter{}

	hub.Register(a)
	hub.Register(b)
	hub.JoinRoom(a, "conv-1")
	hub.JoinRoom(b, "conv-1")

	hub.BroadcastExcept("conv-1", a, domain.WSEvent{Event: domain.EventTypingShow})

	assert.Empty(t, a.Events())
	assert.Len(t, b.Events(), 1)
}

func TestHub_JoinLeaveIdempotent(t *testing.T) {
	hub := NewHub()
	a := &fakeWriter{}
	hub.Register(a)

	hub.JoinRoom(a, "conv-1")
	hub.JoinRoom(a, "conv-1")
	assert.True(t, hub.InRoom(a, "conv-1"))

	hub.Broadcast("conv-1", domain.WSEvent{Event: domain.EventMessageNew})
	assert.Len(t, a.Events(), 1)

	hub.LeaveRoom(a, "conv-1")
	hub.LeaveRoom(a, "conv-1")
	assert.False(t, hub.InRoom(a, "conv-1"))

	// leaving a room never joined is a no-op too
	hub.LeaveRoom(a, "conv-nope")
}

func TestHub_UnregisterDropsMemberships(t *testing.T) {
	hub := NewHub()
	a := &fakeWriter{}
	b := &fakeWriter{}

	hub.Register(a)
	hub.Register(b)
	hub.JoinRoom(a, "conv-1")
	hub.JoinRoom(a, "conv-2")
	hub.JoinRoom(b, "conv-1")

	hub.Unregister(a)

	assert.False(t, hub.InRoom(a, "conv-1"))
	assert.False(t, hub.InRoom(a, "conv-2"))

	hub.Broadcast("conv-1", domain.WSEvent{Event: domain.EventMessageNew})
	assert.Empty(t, a.Events())
	assert.Len(t, b.Events(), 1)
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()
	a := &fakeWriter{}
	b := &fakeWriter{}
	c := &fakeWriter{}

	hub.Register(a)
	hub.Register(b)
	hub.Register(c)

	hub.BroadcastAll(a, domain.WSEvent{Event: domain.EventUserOnline})

	assert.Empty(t, a.Events())
	assert.Len(t, b.Events(), 1)
	assert.Len(t, c.Events(), 1)
}

// a writer that errors must not stop delivery to the rest of the room
func TestHub_BroadcastSurvivesWriterError(t *testing.T) {
	hub := NewHub()
	broken := &fakeWriter{err: assert.AnError}
	ok := &fakeWriter{}

	hub.Register(broken)
	hub.Register(ok)
	hub.JoinRoom(broken, "conv-1")
	hub.JoinRoom(ok, "conv-1")

	hub.Broadcast("conv-1", domain.WSEvent{Event: domain.EventMessageNew})

	assert.Len(t, ok.Events(), 1)
}
