package app

import (
	"context"
	"fmt"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/repository"
	userrepo "realtime_chat_service/internal/user/repository"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendMessageUseCase the message ingest pipeline: validate, content
// check, sanitize, persist, bump the conversation, fan out to the room.
type SendMessageUseCase struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	userRepo userrepo.UserRepository
	hub      Broadcaster
}

// NewSendMessageUseCase create a SendMessageUseCase
func NewSendMessageUseCase(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo userrepo.UserRepository,
	hub Broadcaster,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		userRepo: userRepo,
		hub:      hub,
	}
}

// SendMessageInput one inbound send event
type SendMessageInput struct {
	ConversationID string
	Content        string
	MessageType    string
	MediaURL       string
}

// Execute run the pipeline for one send. The sender identity is the
// one bound to the connection at join time, never re-verified here.
// On success the persisted message has already been broadcast to the
// conversation's room, sender included.
func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID string, in SendMessageInput) (*domain.Message, error) {
	msgType := domain.MessageType(in.MessageType)
	if msgType == "" {
		msgType = domain.MessageTypeText
	}

	// Validated
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", domain.ErrValidation)
	}
	if !msgType.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", domain.ErrValidation, in.MessageType)
	}
	if msgType == domain.MessageTypeText && in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if msgType != domain.MessageTypeText && in.Content == "" && in.MediaURL == "" {
		return nil, fmt.Errorf("%w: media url is required", domain.ErrValidation)
	}

	conv, err := uc.convRepo.FindByID(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, domain.ErrNotParticipant
	}

	// ContentChecked
	if sanitize.ContainsMaliciousContent(in.Content) {
		return nil, fmt.Errorf("%w: malicious pattern", domain.ErrContentRejected)
	}

	// Sanitized
	content := in.Content
	if content != "" {
		content = sanitize.MessageContent(content)
		if msgType == domain.MessageTypeText && content == "" {
			return nil, fmt.Errorf("%w: empty after sanitize", domain.ErrContentRejected)
		}
	}

	// Persisted
	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: in.ConversationID,
		Sender:         senderID,
		MessageType:    msgType,
		Content:        content,
		MediaURL:       in.MediaURL,
		ReadBy:         []domain.ReadReceipt{},
		CreatedAt:      time.Now(),
	}
	if err := uc.msgRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	// ConversationUpdated, not transactional with the insert
	if err := uc.convRepo.TouchLastMessageAt(ctx, in.ConversationID, msg.CreatedAt); err != nil {
		logger.Log.Errorf("conversation touch err :", err, zap.String("conversationID", in.ConversationID))
	}

	// Broadcast with minimal sender display info attached
	if sender, err := uc.userRepo.FindByID(ctx, senderID); err == nil {
		msg.SenderName = sender.Username
	}
	uc.hub.Broadcast(in.ConversationID, domain.WSEvent{
		Event:   domain.EventMessageNew,
		Payload: msg,
	})

	return msg, nil
}

// GetMessages page through a conversation's history for the REST API
func (uc *SendMessageUseCase) GetMessages(ctx context.Context, userID, conversationID string, page, limit int64) ([]domain.Message, int64, error) {
	conv, err := uc.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conv.HasParticipant(userID) {
		return nil, 0, domain.ErrNotParticipant
	}
	return uc.msgRepo.FindByConversation(ctx, conversationID, page, limit)
}

// DeleteMessage sender-only hard delete
func (uc *SendMessageUseCase) DeleteMessage(ctx context.Context, callerID, messageID string) error {
	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.Sender != callerID {
		return domain.ErrNotSender
	}
	return uc.msgRepo.DeleteByID(ctx, messageID)
}
