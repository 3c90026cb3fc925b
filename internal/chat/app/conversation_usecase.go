package app

import (
	"context"
	"fmt"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/repository"
	userdomain "realtime_chat_service/internal/user/domain"
	userrepo "realtime_chat_service/internal/user/repository"
	"realtime_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// ConversationView conversation with its participants populated
type ConversationView struct {
	domain.Conversation
	ParticipantInfo []userdomain.PublicView `json:"participant_info"`
}

// ConversationUseCase conversation listing and find-or-create
type ConversationUseCase struct {
	convRepo repository.ConversationRepository
	userRepo userrepo.UserRepository
}

// NewConversationUseCase create a ConversationUseCase
func NewConversationUseCase(convRepo repository.ConversationRepository, userRepo userrepo.UserRepository) *ConversationUseCase {
	return &ConversationUseCase{
		convRepo: convRepo,
		userRepo: userRepo,
	}
}

// List the caller's conversations, most recent activity first
func (uc *ConversationUseCase) List(ctx context.Context, userID string) ([]ConversationView, error) {
	convs, err := uc.convRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ConversationView, 0, len(convs))
	for _, conv := range convs {
		views = append(views, ConversationView{
			Conversation:    conv,
			ParticipantInfo: uc.participantInfo(ctx, conv.Participants),
		})
	}
	return views, nil
}

// CreateOrGet idempotent direct conversation between the caller and
// one other user. Repeated and concurrent calls return the same row.
func (uc *ConversationUseCase) CreateOrGet(ctx context.Context, userID, participantID string) (*ConversationView, error) {
	if participantID == "" {
		return nil, fmt.Errorf("%w: participant id is required", domain.ErrValidation)
	}
	if participantID == userID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", domain.ErrValidation)
	}

	if _, err := uc.userRepo.FindByID(ctx, participantID); err != nil {
		return nil, fmt.Errorf("%w: participant", domain.ErrNotFound)
	}

	conv, err := uc.convRepo.FindOrCreateDirect(ctx, userID, participantID)
	if err != nil {
		return nil, err
	}

	return &ConversationView{
		Conversation:    *conv,
		ParticipantInfo: uc.participantInfo(ctx, conv.Participants),
	}, nil
}

func (uc *ConversationUseCase) participantInfo(ctx context.Context, participants []string) []userdomain.PublicView {
	views := make([]userdomain.PublicView, 0, len(participants))
	for _, id := range participants {
		user, err := uc.userRepo.FindByID(ctx, id)
		if err != nil {
			logger.Log.Warn("participant lookup failed", zap.String("userID", id), zap.Error(err))
			continue
		}
		views = append(views, user.Public())
	}
	return views
}
