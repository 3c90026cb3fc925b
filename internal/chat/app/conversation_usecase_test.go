package app

import (
	"context"
	"testing"

	"realtime_chat_service/internal/chat/domain"
	userdomain "realtime_chat_service/internal/user/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationUseCase_CreateOrGet(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New().String()
	participantID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockUserRepo := new(MockUserRepository)

	mockUserRepo.On("FindByID", ctx, participantID).Return(&userdomain.User{ID: participantID, Username: "bob"}, nil)
	mockUserRepo.On("FindByID", ctx, callerID).Return(&userdomain.User{ID: callerID, Username: "alice"}, nil)

	conv := &domain.Conversation{
		ID:           uuid.New().String(),
		Participants: []string{callerID, participantID},
		DirectKey:    domain.DirectKey(callerID, participantID),
	}
	mockConvRepo.On("FindOrCreateDirect", ctx, callerID, participantID).Return(conv, nil)

	uc := NewConversationUseCase(mockConvRepo, mockUserRepo)
	view, err := uc.CreateOrGet(ctx, callerID, participantID)

	assert.NoError(t, err)
	assert.Equal(t, conv.ID, view.ID)
	assert.Len(t, view.ParticipantInfo, 2)
}

func TestConversationUseCase_CreateOrGet_Validation(t *testing.T) {
	ctx := context.Background()
	uc := NewConversationUseCase(new(MockConversationRepository), new(MockUserRepository))

	_, err := uc.CreateOrGet(ctx, "u1", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateOrGet(ctx, "u1", "u1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConversationUseCase_CreateOrGet_ParticipantMissing(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("FindByID", ctx, "ghost").Return(nil, assert.AnError)

	uc := NewConversationUseCase(new(MockConversationRepository), mockUserRepo)
	_, err := uc.CreateOrGet(ctx, "u1", "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationUseCase_List_SkipsBrokenParticipantLookups(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockUserRepo := new(MockUserRepository)

	convs := []domain.Conversation{
		{ID: "c1", Participants: []string{callerID, "gone"}},
	}
	mockConvRepo.On("FindByParticipant", ctx, callerID).Return(convs, nil)
	mockUserRepo.On("FindByID", ctx, callerID).Return(&userdomain.User{ID: callerID, Username: "alice"}, nil)
	mockUserRepo.On("FindByID", ctx, "gone").Return(nil, assert.AnError)

	uc := NewConversationUseCase(mockConvRepo, mockUserRepo)
	views, err := uc.List(ctx, callerID)

	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Len(t, views[0].ParticipantInfo, 1)
	}
	mockUserRepo.AssertExpectations(t)
}
