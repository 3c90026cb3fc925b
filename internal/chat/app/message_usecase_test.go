package app

import (
	"context"
	"testing"

	"realtime_chat_service/internal/chat/domain"
	userdomain "realtime_chat_service/internal/user/domain"
	"realtime_chat_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

func TestSendMessageUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()
	senderID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockUserRepo := new(MockUserRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{
		ID:           convID,
		Participants: []string{senderID, "other-user"},
	}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)
	mockMsgRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
	mockConvRepo.On("TouchLastMessageAt", ctx, convID, mock.Anything).Return(nil)
	mockUserRepo.On("FindByID", ctx, senderID).Return(&userdomain.User{ID: senderID, Username: "alice"}, nil)
	mockHub.On("Broadcast", convID, mock.MatchedBy(func(evt domain.WSEvent) bool {
		return evt.Event == domain.EventMessageNew
	})).Once()

	uc := NewSendMessageUseCase(mockConvRepo, mockMsgRepo, mockUserRepo, mockHub)
	msg, err := uc.Execute(ctx, senderID, SendMessageInput{
		ConversationID: convID,
		Content:        "<b>hello</b> world",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, senderID, msg.Sender)
	assert.Equal(t, domain.MessageTypeText, msg.MessageType)
	assert.Equal(t, "<b>hello</b> world", msg.Content)
	assert.Empty(t, msg.ReadBy)

	mockMsgRepo.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestSendMessageUseCase_Execute_MaliciousContent(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()
	senderID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockUserRepo := new(MockUserRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{
		ID:           convID,
		Participants: []string{senderID, "other-user"},
	}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)

	uc := NewSendMessageUseCase(mockConvRepo, mockMsgRepo, mockUserRepo, mockHub)
	_, err := uc.Execute(ctx, senderID, SendMessageInput{
		ConversationID: convID,
		Content:        "<b>hi</b><script>evil()</script>",
	})

	assert.ErrorIs(t, err, domain.ErrContentRejected)
	assert.Equal(t, "content_rejected", domain.ErrorCategory(err))
	// nothing persisted, nothing broadcast
	mockMsgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockHub.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestSendMessageUseCase_Execute_EmptyAfterSanitize(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()
	senderID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockUserRepo := new(MockUserRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{
		ID:           convID,
		Participants: []string{senderID, "other-user"},
	}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)

	uc := NewSendMessageUseCase(mockConvRepo, mockMsgRepo, mockUserRepo, mockHub)
	_, err := uc.Execute(ctx, senderID, SendMessageInput{
		ConversationID: convID,
		Content:        "<div></div>",
	})

	assert.ErrorIs(t, err, domain.ErrContentRejected)
	mockMsgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSendMessageUseCase_Execute_Validation(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New().String()

	uc := NewSendMessageUseCase(new(MockConversationRepository), new(MockMessageRepository), new(MockUserRepository), new(MockBroadcaster))

	_, err := uc.Execute(ctx, senderID, SendMessageInput{Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "validation_error", domain.ErrorCategory(err))

	_, err = uc.Execute(ctx, senderID, SendMessageInput{ConversationID: "c1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, senderID, SendMessageInput{ConversationID: "c1", Content: "hi", MessageType: "carrier-pigeon"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendMessageUseCase_Execute_NotParticipant(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)

	conv := &domain.Conversation{
		ID:           convID,
		Participants: []string{"user-a", "user-b"},
	}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)

	uc := NewSendMessageUseCase(mockConvRepo, mockMsgRepo, new(MockUserRepository), new(MockBroadcaster))
	_, err := uc.Execute(ctx, "intruder", SendMessageInput{ConversationID: convID, Content: "hi"})

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
	assert.Equal(t, "authorization_error", domain.ErrorCategory(err))
	mockMsgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSendMessageUseCase_Execute_TouchFailureStillBroadcasts(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()
	senderID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockMsgRepo := new(MockMessageRepository)
	mockUserRepo := new(MockUserRepository)
	mockHub := new(MockBroadcaster)

	conv := &domain.Conversation{
		ID:           convID,
		Participants: []string{senderID, "other-user"},
	}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)
	mockMsgRepo.On("Insert", ctx, mock.Anything).Return(nil)
	mockConvRepo.On("TouchLastMessageAt", ctx, convID, mock.Anything).Return(assert.AnError)
	mockUserRepo.On("FindByID", ctx, senderID).Return(nil, assert.AnError)
	mockHub.On("Broadcast", convID, mock.Anything).Once()

	uc := NewSendMessageUseCase(mockConvRepo, mockMsgRepo, mockUserRepo, mockHub)
	msg, err := uc.Execute(ctx, senderID, SendMessageInput{ConversationID: convID, Content: "hi"})

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	mockHub.AssertExpectations(t)
}

func TestSendMessageUseCase_GetMessages_NotParticipant(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	conv := &domain.Conversation{ID: convID, Participants: []string{"user-a"}}
	mockConvRepo.On("FindByID", ctx, convID).Return(conv, nil)

	uc := NewSendMessageUseCase(mockConvRepo, new(MockMessageRepository), new(MockUserRepository), new(MockBroadcaster))
	_, _, err := uc.GetMessages(ctx, "someone-else", convID, 1, 50)

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestSendMessageUseCase_DeleteMessage(t *testing.T) {
	ctx := context.Background()
	messageID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)
	msg := &domain.Message{ID: messageID, Sender: "owner"}
	mockMsgRepo.On("FindByID", ctx, messageID).Return(msg, nil)
	mockMsgRepo.On("DeleteByID", ctx, messageID).Return(nil).Once()

	uc := NewSendMessageUseCase(new(MockConversationRepository), mockMsgRepo, new(MockUserRepository), new(MockBroadcaster))

	err := uc.DeleteMessage(ctx, "not-owner", messageID)
	assert.ErrorIs(t, err, domain.ErrNotSender)

	err = uc.DeleteMessage(ctx, "owner", messageID)
	assert.NoError(t, err)
	mockMsgRepo.AssertExpectations(t)
}
