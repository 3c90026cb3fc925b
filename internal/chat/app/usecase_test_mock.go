package app

import (
	"context"
	"sync"
	"time"

	"realtime_chat_service/internal/chat/domain"
	userdomain "realtime_chat_service/internal/user/domain"

	"github.com/stretchr/testify/mock"
)

// MockConversationRepository Mock ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// FindOrCreateDirect moke find or create direct conversation
func (m *MockConversationRepository) FindOrCreateDirect(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID moke find conversation by id
func (m *MockConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByParticipant moke find conversations by participant
func (m *MockConversationRepository) FindByParticipant(ctx context.Context, userID string) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// TouchLastMessageAt moke bump last message time
func (m *MockConversationRepository) TouchLastMessageAt(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert moke insert message
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByID moke find message by id
func (m *MockMessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByConversation moke page messages
func (m *MockMessageRepository) FindByConversation(ctx context.Context, conversationID string, page, limit int64) ([]domain.Message, int64, error) {
	args := m.Called(ctx, conversationID, page, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

// AddReadReceipt moke append read receipt
func (m *MockMessageRepository) AddReadReceipt(ctx context.Context, messageID, userID string, readAt time.Time) (bool, error) {
	args := m.Called(ctx, messageID, userID, readAt)
	return args.Bool(0), args.Error(1)
}

// DeleteByID moke delete message
func (m *MockMessageRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

// CreateUser moke create user
func (m *MockUserRepository) CreateUser(ctx context.Context, user *userdomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// FindByID moke find user by id
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByEmail moke find user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindAll moke list users
func (m *MockUserRepository) FindAll(ctx context.Context, excludeID string) ([]userdomain.User, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) != nil {
		return args.Get(0).([]userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// Search moke search users
func (m *MockUserRepository) Search(ctx context.Context, query, excludeID string) ([]userdomain.User, error) {
	args := m.Called(ctx, query, excludeID)
	if args.Get(0) != nil {
		return args.Get(0).([]userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdatePresence moke presence mirror update
func (m *MockUserRepository) UpdatePresence(ctx context.Context, id string, p userdomain.PresenceUpdate) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

// MockBroadcaster Mock Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

// Broadcast moke room broadcast
func (m *MockBroadcaster) Broadcast(conversationID string, evt domain.WSEvent) {
	m.Called(conversationID, evt)
}

// BroadcastExcept moke room broadcast skipping one connection
func (m *MockBroadcaster) BroadcastExcept(conversationID string, except domain.EventWriter, evt domain.WSEvent) {
	m.Called(conversationID, except, evt)
}

// BroadcastAll moke global broadcast skipping one connection
func (m *MockBroadcaster) BroadcastAll(except domain.EventWriter, evt domain.WSEvent) {
	m.Called(except, evt)
}

// fakeWriter in-memory EventWriter that records what it was sent
type fakeWriter struct {
	mu     sync.Mutex
	events []domain.WSEvent
	err    error
}

func (f *fakeWriter) WriteEvent(evt domain.WSEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeWriter) Events() []domain.WSEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.WSEvent, len(f.events))
	copy(out, f.events)
	return out
}
