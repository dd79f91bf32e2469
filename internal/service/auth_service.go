package service

import (
	"context"

	"github.com/launchkit/backend/internal/model"
)

// GoogleUserInfo is the profile returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	Sub   string
	Email string
	Name  string
}

// AuthService defines the sign-in business logic.
type AuthService interface {
	GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error)
}
