package app

import (
	"context"
	"time"

	"realtime_chat_service/internal/user/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

// CreateUser moke create user
func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// FindByID moke find user by id
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByEmail moke find user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindAll moke list users
func (m *MockUserRepository) FindAll(ctx context.Context, excludeID string) ([]domain.User, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// Search moke search users
func (m *MockUserRepository) Search(ctx context.Context, query, excludeID string) ([]domain.User, error) {
	args := m.Called(ctx, query, excludeID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdatePresence moke presence mirror update
func (m *MockUserRepository) UpdatePresence(ctx context.Context, id string, p domain.PresenceUpdate) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

// MockSessionRepository Mock RedisRepository[domain.UserSession]
type MockSessionRepository struct {
	mock.Mock
}

// Set moke store session
func (m *MockSessionRepository) Set(ctx context.Context, key string, value domain.UserSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get moke load session
func (m *MockSessionRepository) Get(ctx context.Context, key string) (domain.UserSession, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.UserSession), args.Error(1)
}

// Del moke drop session
func (m *MockSessionRepository) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// GetTTL moke session ttl lookup
func (m *MockSessionRepository) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// ExtendTTL moke session ttl extend
func (m *MockSessionRepository) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}
