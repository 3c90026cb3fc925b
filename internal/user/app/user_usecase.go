package app

import (
	"context"
	"time"

	"realtime_chat_service/internal/user/domain"
	"realtime_chat_service/internal/user/repository"
	"realtime_chat_service/pkg/config"
	"realtime_chat_service/pkg/database"
	"realtime_chat_service/pkg/encrypt"
	errprocess "realtime_chat_service/pkg/err"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/sanitize"
	token "realtime_chat_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserUseCase account operations offered to the handlers
type UserUseCase interface {
	Register(ctx context.Context, username, email, password, publicKey string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, t string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	AllUsers(ctx context.Context, callerID string) ([]domain.PublicView, error)
	Search(ctx context.Context, query, callerID string) ([]domain.PublicView, error)
}

type userUseCase struct {
	userRepo   repository.UserRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.UserSession]
}

// NewUserUseCase create a UserUseCase
func NewUserUseCase(userRepo repository.UserRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.UserSession],
) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
	}
}

// Register create an account; the public key arrives from the client as-is
func (u *userUseCase) Register(ctx context.Context, username, email, password, publicKey string) (*domain.User, error) {
	username = sanitize.Username(username)
	if username == "" || email == "" || password == "" {
		return nil, errprocess.Set("all fields are required")
	}
	if publicKey == "" {
		return nil, errprocess.Set("public key is required")
	}

	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errprocess.Set("user already exists")
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Password:  pw,
		PublicKey: publicKey,
	}

	if err := u.userRepo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.String("userID", user.ID))
	return &user, nil
}

// Login verify credentials, issue a JWT and record the session in redis
func (u *userUseCase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errprocess.Set("email and password are required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errprocess.Set("invalid email or password")
	}

	if err = user.IsPasswordMatch(password); err != nil {
		return "", nil, errprocess.Set("invalid email or password")
	}

	t, err := token.GenerateJWT(user.ID, config.EnvConfig.ChatService)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	session := domain.UserSession{
		Token:        t,
		UserID:       user.ID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(u.sessionTTL),
	}

	if err := u.redisRepo.Set(ctx, user.ID, session, u.sessionTTL); err != nil {
		logger.Log.Errorf("session store err :", err, zap.String("userID", user.ID))
	}

	return t, user, nil
}

// Logout drop the redis session
func (u *userUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}

	return u.redisRepo.Del(ctx, tokenInfo.UserID)
}

// Profile load the caller's account
func (u *userUseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return u.userRepo.FindByID(ctx, userID)
}

// AllUsers list every other account for contact discovery
func (u *userUseCase) AllUsers(ctx context.Context, callerID string) ([]domain.PublicView, error) {
	users, err := u.userRepo.FindAll(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return toPublicViews(users), nil
}

// Search find users by username or email fragment
func (u *userUseCase) Search(ctx context.Context, query, callerID string) ([]domain.PublicView, error) {
	query = sanitize.TextInput(query)
	if query == "" {
		return nil, errprocess.Set("search query is required")
	}
	users, err := u.userRepo.Search(ctx, query, callerID)
	if err != nil {
		return nil, err
	}
	return toPublicViews(users), nil
}

func toPublicViews(users []domain.User) []domain.PublicView {
	views := make([]domain.PublicView, 0, len(users))
	for _, user := range users {
		views = append(views, user.Public())
	}
	return views
}
