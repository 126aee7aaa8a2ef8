package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/repository"
	"github.com/Saifr72000/airsense-platform/internal/session"
)

// AuthService 认证服务接口
// "get current user" / "sign in" / "sign out" over a Redis session store.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*domain.User, *session.Session, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, *session.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

type authService struct {
	users    repository.UsersRepository
	sessions *session.Store
	logger   *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(users repository.UsersRepository, sessions *session.Store, logger *zap.Logger) AuthService {
	return &authService{users: users, sessions: sessions, logger: logger}
}

func (s *authService) SignUp(ctx context.Context, email, password string) (*domain.User, *session.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, nil, Validationf("email and password are required")
	}
	if len(password) < 8 {
		return nil, nil, Validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, &domain.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, Validationf("email %s is already registered", email)
		}
		return nil, nil, err
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, sess, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*domain.User, *session.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, nil, Validationf("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same answer as a bad password: never reveal which one failed.
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrUnauthorized
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user signed in", zap.String("user_id", user.ID))
	return user, sess, nil
}

func (s *authService) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
