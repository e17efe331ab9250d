package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserProfile(ctx context.Context, userID, firstName, lastName, phone string) error
}

type SessionStore interface {
	SaveSession(ctx context.Context, token string, session *repository.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*repository.Session, error)
}

// AuthService registers users and issues opaque bearer tokens. A token is a
// random identifier whose session lives in Redis until its TTL expires; the
// token string itself carries no user data.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	audit      Auditor
	logger     *zap.Logger
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users UserStore, sessions SessionStore, audit Auditor, logger *zap.Logger, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 168 * time.Hour
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		audit:      audit,
		logger:     logger,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthResult struct {
	Token string
	User  *models.User
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	exists, err := s.users.UserExists(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("username", user.Username))

	go s.audit.CreateAuditLog(context.Background(), &repository.AuditLog{
		Action:   "user_registered",
		UserID:   user.ID,
		EntityID: user.ID,
		Data:     bson.M{"username": user.Username, "email": user.Email},
	})

	return &AuthResult{Token: token, User: user}, nil
}

// Login accepts a username or an email address.
func (s *AuthService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))

	go s.audit.CreateAuditLog(context.Background(), &repository.AuditLog{
		Action:   "user_login",
		UserID:   user.ID,
		EntityID: user.ID,
		Data:     bson.M{"username": user.Username},
	})

	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) error {
	if err := s.users.UpdateUserProfile(ctx, userID, firstName, lastName, phone); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	s.logger.Info("Profile updated", zap.String("user_id", userID))
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, user *models.User) (string, error) {
	token := uuid.NewString()
	session := &repository.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	if err := s.sessions.SaveSession(ctx, token, session, s.tokenTTL); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}
