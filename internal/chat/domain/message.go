package domain

import "time"

// MessageType tag on a chat message
type MessageType string

const (
	// MessageTypeText plain text body
	MessageTypeText MessageType = "text"
	// MessageTypeImage image attachment
	MessageTypeImage MessageType = "image"
	// MessageTypeVideo video attachment
	MessageTypeVideo MessageType = "video"
	// MessageTypeFile generic file attachment
	MessageTypeFile MessageType = "file"
)

// Valid report whether the tag is one of the known kinds
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeVideo, MessageTypeFile:
		return true
	}
	return false
}

// ReadReceipt one reader's read mark, unique per reader on a message
type ReadReceipt struct {
	UserID string    `bson:"user_id" json:"user_id"`
	ReadAt time.Time `bson:"read_at" json:"read_at"`
}

// Message one chat message, owned by its conversation.
// Content is opaque to the server and may be ciphertext.
type Message struct {
	ID             string        `bson:"_id,omitempty" json:"id"`
	ConversationID string        `bson:"conversation_id" json:"conversation_id"`
	Sender         string        `bson:"sender" json:"sender"`
	SenderName     string        `bson:"-" json:"sender_name,omitempty"`
	MessageType    MessageType   `bson:"message_type" json:"message_type"`
	Content        string        `bson:"content,omitempty" json:"content,omitempty"`
	MediaURL       string        `bson:"media_url,omitempty" json:"media_url,omitempty"`
	ReadBy         []ReadReceipt `bson:"read_by,omitempty" json:"read_by,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}
