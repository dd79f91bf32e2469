package service

import (
	"context"
	"errors"
	"testing"

	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
)

type mockUserRepo struct {
	findByGoogleIDFunc func(ctx context.Context, googleID string) (*model.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	createFunc         func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByID(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	if m.findByGoogleIDFunc != nil {
		return m.findByGoogleIDFunc(ctx, googleID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByStripeCustomerID(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "generated-id"
	return nil
}

func (m *mockUserRepo) UpdateSubscription(context.Context, string, *model.Subscription) error {
	return nil
}

func TestAuthService_GetOrCreate_ExistingGoogleUser(t *testing.T) {
	repo := &mockUserRepo{
		findByGoogleIDFunc: func(ctx context.Context, googleID string) (*model.User, error) {
			return &model.User{ID: "user-1", GoogleID: googleID}, nil
		},
		createFunc: func(ctx context.Context, user *model.User) error {
			t.Error("no user should be created when the Google subject matches")
			return nil
		},
	}
	svc := NewAuthService(repo)

	u, err := svc.GetOrCreateUserFromGoogle(context.Background(), &GoogleUserInfo{Sub: "goog-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "user-1" {
		t.Errorf("expected existing user back, got %+v", u)
	}
}

// TestAuthService_GetOrCreate_LinksByEmail verifies an account created before
// the Google sign-in is reused rather than duplicated.
func TestAuthService_GetOrCreate_LinksByEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-2", Email: email}, nil
		},
		createFunc: func(ctx context.Context, user *model.User) error {
			t.Error("no user should be created when the email matches")
			return nil
		},
	}
	svc := NewAuthService(repo)

	u, err := svc.GetOrCreateUserFromGoogle(context.Background(), &GoogleUserInfo{Sub: "goog-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "user-2" {
		t.Errorf("expected email-matched user back, got %+v", u)
	}
}

func TestAuthService_GetOrCreate_CreatesNewUser(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user-3"
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo)

	u, err := svc.GetOrCreateUserFromGoogle(context.Background(), &GoogleUserInfo{
		Sub: "goog-1", Email: "new@example.com", Name: "New User",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected a user to be created")
	}
	if u.Email != "new@example.com" || u.GoogleID != "goog-1" || u.Name != "New User" {
		t.Errorf("expected profile fields stored, got %+v", u)
	}
}

func TestAuthService_GetOrCreate_CreateError(t *testing.T) {
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			return errors.New("insert failed")
		},
	}
	svc := NewAuthService(repo)

	if _, err := svc.GetOrCreateUserFromGoogle(context.Background(), &GoogleUserInfo{Sub: "g", Email: "x@y.com"}); err == nil {
		t.Error("expected create error to propagate")
	}
}
