package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
)

// CreateUser adds an account without a password.
func (s *Store) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return uuid.Nil, fmt.Errorf("failed to create user: email %s already exists", email)
		}
	}
	now := s.now()
	u := db.User{ID: uuid.New(), Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	s.users[u.ID] = u
	return u.ID, nil
}

// GetUser returns nil, nil when the user does not exist.
func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetUserByEmail returns nil, nil when no user has that email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// CheckEmailExists reports whether an account uses email.
func (s *Store) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := s.GetUserByEmail(ctx, email)
	return u != nil, err
}

// UpdatePassword stores a password hash.
func (s *Store) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return notFound("user", id)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	u.UpdatedAt = s.now()
	s.users[id] = u
	return nil
}

// HasUsers reports whether any account exists. Demo mode uses it to decide
// whether the identity backend is available.
func (s *Store) HasUsers() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) > 0
}
