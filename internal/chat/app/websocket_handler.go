package app

import (
	"context"
	"encoding/json"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Session one connection's dispatch context. The identity is bound
// once at upgrade time and trusted for every later event.
type Session struct {
	UserID string
	W      domain.EventWriter
}

// ChatWebsocketHandler owns the per-connection read loop and event dispatch
type ChatWebsocketHandler struct {
	presence  *PresenceRegistry
	hub       *Hub
	messageUC *SendMessageUseCase
	signalUC  *SignalUseCase
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	presence *PresenceRegistry,
	hub *Hub,
	messageUC *SendMessageUseCase,
	signalUC *SignalUseCase,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		presence:  presence,
		hub:       hub,
		messageUC: messageUC,
		signalUC:  signalUC,
	}
}

// HandleConnection entry point for an upgraded WebSocket connection.
// Events on one connection are handled sequentially in arrival order;
// connections run concurrently with respect to each other.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	userID, ok := tokenUser.(string)
	if !ok || userID == "" {
		logger.Log.Error("websocket upgrade without identity")
		conn.Close()
		return
	}
	logger.Log.Info("websocket connected", zap.String("userID", userID))

	client := NewClient(userID, conn)
	sess := &Session{UserID: userID, W: client}

	h.hub.Register(client)

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		cancel()
		// disconnect: drop room memberships, then presence leave
		h.hub.Unregister(client)
		h.presence.Leave(ctx, client)
		logger.Log.Info("websocket closed", zap.String("userID", userID))
		conn.Close()
	}()

	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// keepalive ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			h.sendError(sess, "validation_error", "unknown message type")
			continue
		}
		h.HandleEvent(ctx, sess, message)
	}
}

// HandleEvent dispatch one inbound event for the session
func (h *ChatWebsocketHandler) HandleEvent(ctx context.Context, sess *Session, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Errorf("json unmarshal error:", err)
		h.sendError(sess, "validation_error", "malformed event")
		return
	}

	switch domain.Event(req.Event) {
	case domain.EventJoin:
		// the payload user must be the one the token proved at upgrade
		if req.UserID != "" && req.UserID != sess.UserID {
			h.sendError(sess, "authorization_error", "join user mismatch")
			return
		}
		h.presence.Join(ctx, sess.UserID, sess.W)

	case domain.EventRoomJoin:
		if req.ConversationID == "" {
			h.sendError(sess, "validation_error", "conversation id is required")
			return
		}
		h.hub.JoinRoom(sess.W, req.ConversationID)

	case domain.EventRoomLeave:
		if req.ConversationID == "" {
			h.sendError(sess, "validation_error", "conversation id is required")
			return
		}
		h.hub.LeaveRoom(sess.W, req.ConversationID)

	case domain.EventSend:
		_, err := h.messageUC.Execute(ctx, sess.UserID, SendMessageInput{
			ConversationID: req.ConversationID,
			Content:        req.Content,
			MessageType:    req.MessageType,
			MediaURL:       req.MediaURL,
		})
		if err != nil {
			logger.Log.Error("send failed",
				zap.String("userID", sess.UserID),
				zap.String("conversationID", req.ConversationID),
				zap.String("err", err.Error()))
			h.sendError(sess, domain.ErrorCategory(err), err.Error())
		}

	case domain.EventTypingStart:
		// typing only relays through rooms this connection joined
		if !h.hub.InRoom(sess.W, req.ConversationID) {
			logger.Log.Debug("typing outside joined room", zap.String("userID", sess.UserID))
			return
		}
		h.signalUC.TypingStart(req.ConversationID, sess.UserID, req.DisplayName, sess.W)

	case domain.EventTypingStop:
		if !h.hub.InRoom(sess.W, req.ConversationID) {
			return
		}
		h.signalUC.TypingStop(req.ConversationID, sess.UserID, sess.W)

	case domain.EventRead:
		if req.MessageID == "" || req.ConversationID == "" {
			h.sendError(sess, "validation_error", "message id and conversation id are required")
			return
		}
		if _, err := h.signalUC.MarkRead(ctx, req.ConversationID, req.MessageID, sess.UserID); err != nil {
			logger.Log.Error("mark read failed",
				zap.String("userID", sess.UserID),
				zap.String("messageID", req.MessageID),
				zap.String("err", err.Error()))
			h.sendError(sess, domain.ErrorCategory(err), err.Error())
		}

	default:
		h.sendError(sess, "validation_error", "unknown event")
	}
}

// sendError sender-scoped failure event, never fatal to the connection
func (h *ChatWebsocketHandler) sendError(sess *Session, reason, detail string) {
	_ = sess.W.WriteEvent(domain.WSEvent{
		Event:   domain.EventMessageError,
		Payload: domain.ErrorPayload{Reason: reason, Detail: detail},
	})
}
