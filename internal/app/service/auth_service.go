package service

import (
	"blogboard/internal/common"
	"blogboard/internal/common/security"
	"blogboard/internal/domain/model"
	"blogboard/internal/domain/repository"
	"blogboard/internal/platform/config"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	logger      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, sessionRepo: sessionRepo, logger: logger}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionIdentity is the minimal projection of a user returned on login and
// held by the client for the browser session.
type SessionIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoginResponse struct {
	User  SessionIdentity `json:"user"`
	Token string          `json:"token"`
}

// Register validates the credentials, hashes the password and persists the
// new user. It does not log the user in. Duplicate emails are rejected by
// the storage unique constraint, not an application pre-check, so there is
// no check-then-act race.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if err := validateRegistration(req); err != nil {
		return "", err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return "", err
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user.ID, nil
}

// Login verifies the credentials and issues a token backed by a server-side
// session record. Unknown email and wrong password collapse into the same
// ErrInvalidCredentials so the response never reveals which one failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Not worth failing the login over.
		s.logger.Warn("failed to update last_login", zap.String("user_id", user.ID), zap.Error(err))
	}

	session := &model.Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		UserName: user.Name,
		IssuedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session, config.AppConfig.JWTExp); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := security.GenerateToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResponse{
		User:  SessionIdentity{ID: user.ID, Name: user.Name},
		Token: token,
	}, nil
}

// Logout revokes the session record unconditionally; the token dies with it.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func validateRegistration(req RegisterRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return common.NewValidationError("name", "must be at least 2 characters long")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return common.NewValidationError("email", "must be a valid email address")
	}
	if len(req.Password) < 6 {
		return common.NewValidationError("password", "must be at least 6 characters long")
	}
	return nil
}
