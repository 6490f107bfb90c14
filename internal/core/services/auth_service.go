package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type TokenGenerator interface {
	GenerateToken(userID string) (string, error)
}

type AuthService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
}

func NewAuthService(repo domain.UserRepository, tokens TokenGenerator) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email, input.Username)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("auth service: lookup user: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// UpdateProfileInput changes the username, the password, or both. Empty fields are left alone.
type UpdateProfileInput struct {
	UserID          string
	Username        string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile requires the current password before setting a new one.
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" && input.NewPassword == "" {
		return nil, domain.ErrNothingToUpdate
	}

	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		if err := user.Rename(username); err != nil {
			return nil, err
		}
	}

	if input.NewPassword != "" {
		if err := user.CheckPassword(input.CurrentPassword); err != nil {
			return nil, domain.ErrWrongPassword
		}
		if err := user.SetPassword(input.NewPassword); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: update profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}
