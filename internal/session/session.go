// Package session keeps track of signed-out tokens until they expire.
package session

import (
	"context"
	"sync"
	"time"
)

// Revoker records revoked token ids.
type Revoker interface {
	// Revoke marks id as revoked until expiresAt. Revoking an already
	// expired token is a no-op.
	Revoke(ctx context.Context, id string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// Memory is an in-process Revoker.
type Memory struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemory returns an empty in-process revocation store.
func NewMemory() *Memory {
	return &Memory{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *Memory) Revoke(_ context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !expiresAt.After(now) {
		return nil
	}
	m.revoked[id] = expiresAt
	m.sweep(now)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[id]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.revoked, id)
		return false, nil
	}
	return true, nil
}

// sweep drops entries whose token has expired anyway. Callers hold mu.
func (m *Memory) sweep(now time.Time) {
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
}
