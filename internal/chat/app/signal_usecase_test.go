package app

import (
	"context"
	"testing"

	"realtime_chat_service/internal/chat/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSignalUseCase_Typing(t *testing.T) {
	convID := uuid.New().String()
	userID := uuid.New().String()
	origin := &fakeWriter{}

	mockHub := new(MockBroadcaster)
	mockHub.On("BroadcastExcept", convID, origin, mock.MatchedBy(func(evt domain.WSEvent) bool {
		if evt.Event != domain.EventTypingShow {
			return false
		}
		p := evt.Payload.(domain.TypingPayload)
		return p.UserID == userID && p.DisplayName == "alice"
	})).Once()
	mockHub.On("BroadcastExcept", convID, origin, mock.MatchedBy(func(evt domain.WSEvent) bool {
		return evt.Event == domain.EventTypingHide
	})).Once()

	uc := NewSignalUseCase(new(MockConversationRepository), new(MockMessageRepository), mockHub)
	uc.TypingStart(convID, userID, "alice", origin)
	uc.TypingStop(convID, userID, origin)

	mockHub.AssertExpectations(t)
}

func TestSignalUseCase_TypingSanitizesDisplayName(t *testing.T) {
	convID := uuid.New().String()
	origin := &fakeWriter{}

	mockHub := new(MockBroadcaster)
	mockHub.On("BroadcastExcept", convID, origin, mock.MatchedBy(func(evt domain.WSEvent) bool {
		p := evt.Payload.(domain.TypingPayload)
		return p.DisplayName == "alice"
	})).Once()

	uc := NewSignalUseCase(new(MockConversationRepository), new(MockMessageRepository), mockHub)
	uc.TypingStart(convID, "u1", `  <"alice">&  `, origin)

	mockHub.AssertExpectations(t)
}

func TestSignalUseCase_MarkRead(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()
	messageID := uuid.New().String()
	readerID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{ID: convID, Participants: []string{readerID, "other"}}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)
	mockMsgRepo.On("AddReadReceipt", ctx, messageID, readerID, mock.Anything).Return(true, nil)
	mockHub.On("Broadcast", convID, mock.MatchedBy(func(evt domain.WSEvent) bool {
		if evt.Event != domain.EventReadUpdate {
			return false
		}
		p := evt.Payload.(domain.ReadUpdatePayload)
		return p.MessageID == messageID && p.UserID == readerID
	})).Once()

	uc := NewSignalUseCase(mockConvRepo, mockMsgRepo, mockHub)
	readAt, err := uc.MarkRead(ctx, convID, messageID, readerID)

	assert.NoError(t, err)
	assert.False(t, readAt.IsZero())
	mockHub.AssertExpectations(t)
}

// re-marking does not grow the stored set but the room still hears
// about it every time
func TestSignalUseCase_MarkRead_RepeatStillEmits(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()
	messageID := uuid.New().String()
	readerID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{ID: convID, Participants: []string{readerID}}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)
	mockMsgRepo.On("AddReadReceipt", ctx, messageID, readerID, mock.Anything).Return(false, nil)
	mockHub.On("Broadcast", convID, mock.Anything).Once()

	uc := NewSignalUseCase(mockConvRepo, mockMsgRepo, mockHub)
	_, err := uc.MarkRead(ctx, convID, messageID, readerID)

	assert.NoError(t, err)
	mockHub.AssertExpectations(t)
}

func TestSignalUseCase_MarkRead_NotParticipant(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{ID: convID, Participants: []string{"member"}}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)

	uc := NewSignalUseCase(mockConvRepo, mockMsgRepo, mockHub)
	_, err := uc.MarkRead(ctx, convID, "m1", "outsider")

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
	mockMsgRepo.AssertNotCalled(t, "AddReadReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockHub.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}
