package app

import (
	"context"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/repository"
	"realtime_chat_service/pkg/sanitize"
)

// SignalUseCase ephemeral signal relay: typing indicators pass
// through the room without touching the store, read receipts touch
// only the message's read_by set.
type SignalUseCase struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	hub      Broadcaster
}

// NewSignalUseCase create a SignalUseCase
func NewSignalUseCase(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	hub Broadcaster,
) *SignalUseCase {
	return &SignalUseCase{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		hub:      hub,
	}
}

// TypingStart relay the indicator to every other room member. Nothing
// is persisted and there is no server-side timeout, the client owns
// the matching typing-stop.
func (uc *SignalUseCase) TypingStart(conversationID, userID, displayName string, origin domain.EventWriter) {
	uc.hub.BroadcastExcept(conversationID, origin, domain.WSEvent{
		Event: domain.EventTypingShow,
		Payload: domain.TypingPayload{
			UserID:         userID,
			DisplayName:    sanitize.Username(displayName),
			ConversationID: conversationID,
		},
	})
}

// TypingStop clear the indicator for every other room member
func (uc *SignalUseCase) TypingStop(conversationID, userID string, origin domain.EventWriter) {
	uc.hub.BroadcastExcept(conversationID, origin, domain.WSEvent{
		Event: domain.EventTypingHide,
		Payload: domain.TypingPayload{
			UserID:         userID,
			ConversationID: conversationID,
		},
	})
}

// MarkRead append the reader's receipt and relay the update to the
// whole room, reader included. Re-marking leaves the stored set
// unchanged but still emits a fresh event.
func (uc *SignalUseCase) MarkRead(ctx context.Context, conversationID, messageID, readerID string) (time.Time, error) {
	conv, err := uc.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		return time.Time{}, err
	}
	if !conv.HasParticipant(readerID) {
		return time.Time{}, domain.ErrNotParticipant
	}

	readAt := time.Now()
	if _, err := uc.msgRepo.AddReadReceipt(ctx, messageID, readerID, readAt); err != nil {
		return time.Time{}, err
	}

	uc.hub.Broadcast(conversationID, domain.WSEvent{
		Event: domain.EventReadUpdate,
		Payload: domain.ReadUpdatePayload{
			MessageID:      messageID,
			ConversationID: conversationID,
			UserID:         readerID,
			ReadAt:         readAt,
		},
	})

	return readAt, nil
}
