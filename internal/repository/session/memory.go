// Package session holds the storage tiers of the session store. A tier
// maps a session token to the identity stored under the "user" key.
package session

import (
	"context"
	"sync"

	"mancarijo/internal/domain"
)

// StorageKey is the fixed key the identity is stored under.
const StorageKey = "user"

type memoryTier struct {
	name string
	mu   sync.RWMutex
	data map[string]domain.Identity
}

// NewMemoryTier keeps identities in process memory. It is lost on restart,
// which is what the ephemeral tier wants.
func NewMemoryTier(name string) domain.SessionTier {
	return &memoryTier{
		name: name,
		data: make(map[string]domain.Identity),
	}
}

func (t *memoryTier) Name() string { return t.name }

func (t *memoryTier) Load(_ context.Context, token string) (*domain.Identity, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	identity, ok := t.data[key(token)]
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

func (t *memoryTier) Save(_ context.Context, token string, identity domain.Identity) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data[key(token)] = identity
	return nil
}

func (t *memoryTier) Delete(_ context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.data, key(token))
	return nil
}

func key(token string) string {
	return "mancarijo:session:" + token + ":" + StorageKey
}
