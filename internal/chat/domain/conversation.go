package domain

import (
	"sort"
	"strings"
	"time"

	"realtime_chat_service/pkg"
)

// Conversation participant group with last-activity ordering.
// For the direct variant exactly one conversation exists per
// unordered participant pair, keyed by DirectKey.
type Conversation struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Participants  []string  `bson:"participants" json:"participants"`
	DirectKey     string    `bson:"direct_key,omitempty" json:"-"`
	IsGroup       bool      `bson:"is_group" json:"is_group"`
	GroupName     string    `bson:"group_name,omitempty" json:"group_name,omitempty"`
	GroupAdmin    string    `bson:"group_admin,omitempty" json:"group_admin,omitempty"`
	LastMessageAt time.Time `bson:"last_message_at" json:"last_message_at"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// HasParticipant report whether the user belongs to the conversation
func (c *Conversation) HasParticipant(userID string) bool {
	return pkg.Contains(c.Participants, userID)
}

// DirectKey canonical key for an unordered participant pair,
// backing the uniqueness guarantee of direct conversations
func DirectKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}
