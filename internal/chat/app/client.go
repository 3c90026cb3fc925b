package app

import (
	"encoding/json"
	"sync"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

// Client one live websocket connection with its bound identity.
// UserID is set from the verified token at upgrade time and is
// immutable for the connection's lifetime.
type Client struct {
	UserID string

	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewClient wrap an upgraded connection
func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
	}
}

// WriteEvent marshal and send one event. The write mutex serializes
// fan-out writes with the connection's own replies.
func (c *Client) WriteEvent(evt domain.WSEvent) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write event error:", err)
		return err
	}
	return nil
}
