package domain

import "time"

// Event websocket event name
type Event string

// Events consumed from the client
const (
	// EventJoin activate presence for the authenticated user
	EventJoin Event = "join"
	// EventRoomJoin add the connection to a conversation room
	EventRoomJoin Event = "room-join"
	// EventRoomLeave remove the connection from a conversation room
	EventRoomLeave Event = "room-leave"
	// EventSend run the message ingest pipeline
	EventSend Event = "send"
	// EventTypingStart relay a typing indicator to the rest of the room
	EventTypingStart Event = "typing-start"
	// EventTypingStop clear the typing indicator
	EventTypingStop Event = "typing-stop"
	// EventRead append a read receipt
	EventRead Event = "read"
)

// Events produced by the server
const (
	// EventUserOnline presence broadcast after join
	EventUserOnline Event = "user-online"
	// EventUserOffline presence broadcast after disconnect
	EventUserOffline Event = "user-offline"
	// EventMessageNew persisted message fan-out, sender included
	EventMessageNew Event = "message-new"
	// EventMessageError sender-scoped pipeline failure
	EventMessageError Event = "message-error"
	// EventTypingShow typing indicator for other room members
	EventTypingShow Event = "typing-show"
	// EventTypingHide typing indicator cleared
	EventTypingHide Event = "typing-hide"
	// EventReadUpdate read receipt fan-out, reader included
	EventReadUpdate Event = "read-update"
)

// WSRequest websocket request envelope
type WSRequest struct {
	Event          string `json:"event"`
	UserID         string `json:"user_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Content        string `json:"content,omitempty"`
	MessageType    string `json:"message_type,omitempty"`
	MediaURL       string `json:"media_url,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
	DisplayName    string `json:"display_name,omitempty"`
}

// WSEvent websocket server-to-client envelope
type WSEvent struct {
	Event   Event       `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// PresencePayload user-online / user-offline payload
type PresencePayload struct {
	UserID   string     `json:"user_id"`
	IsOnline bool       `json:"is_online"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// TypingPayload typing-show / typing-hide payload
type TypingPayload struct {
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name,omitempty"`
	ConversationID string `json:"conversation_id"`
}

// ReadUpdatePayload read-update payload
type ReadUpdatePayload struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}

// ErrorPayload message-error payload, reason is the failure category
type ErrorPayload struct {
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// EventWriter one live client connection from the fan-out side.
// Implementations must be safe for concurrent WriteEvent calls.
type EventWriter interface {
	WriteEvent(evt WSEvent) error
}
