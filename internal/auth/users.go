package auth

import (
	"context"
	"fmt"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// UserStore persists user accounts in the key-value store, with an
// email -> id index entry so logins don't scan.
type UserStore struct {
	store storage.Store
}

// NewUserStore creates a UserStore on the given store.
func NewUserStore(store storage.Store) *UserStore {
	return &UserStore{store: store}
}

// CreateUser writes the user record and its email index as one batch.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.store.Apply(ctx,
		storage.Put{Key: storage.UserKey(user.ID), Value: user},
		storage.Put{Key: storage.UserEmailKey(user.Email), Value: user.ID},
	)
}

// GetUserByID returns the user, or nil if no such user exists.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	found, err := s.store.Get(ctx, storage.UserKey(id), user)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return user, nil
}

// GetUserByEmail resolves the email index and returns the user, or nil if
// the email is unknown.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var id string
	found, err := s.store.Get(ctx, storage.UserEmailKey(email), &id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve email %s: %w", email, err)
	}
	if !found {
		return nil, nil
	}
	return s.GetUserByID(ctx, id)
}
