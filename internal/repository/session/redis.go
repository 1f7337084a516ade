package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mancarijo/internal/domain"
)

type redisTier struct {
	client *redis.Client
}

// NewRedisTier stores identities in redis with no expiry, so a remembered
// sign-in survives restarts until sign-out.
func NewRedisTier(client *redis.Client) domain.SessionTier {
	return &redisTier{client: client}
}

func (t *redisTier) Name() string { return string(domain.PersistenceDurable) }

func (t *redisTier) Load(ctx context.Context, token string) (*domain.Identity, error) {
	raw, err := t.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("session: decode identity: %w", err)
	}
	return &identity, nil
}

func (t *redisTier) Save(ctx context.Context, token string, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session: encode identity: %w", err)
	}
	if err := t.client.Set(ctx, key(token), raw, 0).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (t *redisTier) Delete(ctx context.Context, token string) error {
	if err := t.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
