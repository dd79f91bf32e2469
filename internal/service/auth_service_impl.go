package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
)

// AuthServiceImpl is the production implementation of AuthService.
type AuthServiceImpl struct {
	userRepo repository.UserRepository
}

// NewAuthService creates an AuthServiceImpl (DI: UserRepository injected).
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo}
}

// GetOrCreateUserFromGoogle resolves a user by Google subject, falling back
// to the email (an existing account is linked on first Google sign-in), and
// creates a fresh account when neither matches.
func (s *AuthServiceImpl) GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	u, err := s.userRepo.FindByGoogleID(ctx, info.Sub)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if u, err := s.userRepo.FindByEmail(ctx, info.Email); err == nil {
		return u, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	newUser := &model.User{
		Email:    info.Email,
		GoogleID: info.Sub,
		Name:     info.Name,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		slog.Error("create google user failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", newUser.ID, "provider", "google")
	return newUser, nil
}
