package domain

import (
	"time"

	"realtime_chat_service/pkg/encrypt"
)

// User chat account, stored in the users collection.
// PublicKey is client-side key material, opaque to the server.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	PublicKey string    `bson:"public_key,omitempty" json:"public_key,omitempty"`
	IsOnline  bool      `bson:"is_online" json:"is_online"`
	LastSeen  time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
	SocketID  string    `bson:"socket_id,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSession login session mirrored to redis with a TTL
type UserSession struct {
	Token        string    `json:"Token"`
	UserID       string    `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// PresenceUpdate mirror fields written on presence transitions
type PresenceUpdate struct {
	IsOnline bool
	LastSeen time.Time
	SocketID string
}

// IsPasswordMatch verify the login password
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// IsExpired check the session lifetime
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// PublicView trims a user down to what other members may see
type PublicView struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen,omitempty"`
}

// Public build the shareable view of the user
func (u *User) Public() PublicView {
	return PublicView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsOnline: u.IsOnline,
		LastSeen: u.LastSeen,
	}
}
