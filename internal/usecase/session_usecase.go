package usecase

import (
	"context"
	"errors"
	"sync"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"
	"mancarijo/pkg/metrics"
)

type sessionUsecase struct {
	ephemeral domain.SessionTier
	durable   domain.SessionTier
	metrics   *metrics.Metrics

	mu       sync.RWMutex
	searches map[string]string
}

// NewSessionUsecase creates the session store over its two tiers. The
// search query is view state and only ever lives in memory.
func NewSessionUsecase(ephemeral, durable domain.SessionTier, m *metrics.Metrics) domain.SessionUsecase {
	return &sessionUsecase{
		ephemeral: ephemeral,
		durable:   durable,
		metrics:   m,
		searches:  make(map[string]string),
	}
}

// SignIn persists identity in exactly one tier. The other tier is cleared
// first so a later lookup cannot find a stale identity there.
func (u *sessionUsecase) SignIn(ctx context.Context, token string, identity domain.Identity, persistence domain.Persistence) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, apperror.Internal(errors.New("session: empty token"))
	}

	target, other := u.ephemeral, u.durable
	if persistence == domain.PersistenceDurable {
		target, other = u.durable, u.ephemeral
	}

	if err := other.Delete(ctx, token); err != nil {
		logger.Log.Warn("Failed to clear session tier", "tier", other.Name(), "error", err)
	}
	if err := target.Save(ctx, token, identity); err != nil {
		return domain.Session{}, apperror.Internal(err)
	}
	u.metrics.ObserveSignIn(target.Name())

	return domain.Session{
		Token:       token,
		Identity:    &identity,
		SearchQuery: u.searchQuery(token),
	}, nil
}

// SignOut removes the identity from both tiers whichever holds it. A tier
// that fails to delete is logged and skipped.
func (u *sessionUsecase) SignOut(ctx context.Context, token string) {
	u.mu.Lock()
	delete(u.searches, token)
	u.mu.Unlock()

	if token == "" {
		return
	}
	for _, tier := range []domain.SessionTier{u.ephemeral, u.durable} {
		if err := tier.Delete(ctx, token); err != nil {
			logger.Log.Warn("Failed to clear session tier", "tier", tier.Name(), "error", err)
		}
	}
}

// Refresh rewrites the identity in the tier that currently holds token,
// probing in the same order as Current. An anonymous token is left alone.
func (u *sessionUsecase) Refresh(ctx context.Context, token string, identity domain.Identity) error {
	if token == "" {
		return nil
	}
	for _, tier := range []domain.SessionTier{u.ephemeral, u.durable} {
		stored, err := tier.Load(ctx, token)
		if err != nil {
			logger.Log.Warn("Failed to load session", "tier", tier.Name(), "error", err)
			continue
		}
		if stored == nil {
			continue
		}
		if err := tier.Save(ctx, token, identity); err != nil {
			return apperror.Internal(err)
		}
		return nil
	}
	return nil
}

// Current reads the ephemeral tier, then the durable one. A tier that
// fails to answer counts as empty.
func (u *sessionUsecase) Current(ctx context.Context, token string) domain.Session {
	session := domain.Session{Token: token}
	if token == "" {
		return session
	}
	session.SearchQuery = u.searchQuery(token)

	for _, tier := range []domain.SessionTier{u.ephemeral, u.durable} {
		identity, err := tier.Load(ctx, token)
		if err != nil {
			logger.Log.Warn("Failed to load session", "tier", tier.Name(), "error", err)
			continue
		}
		if identity != nil {
			session.Identity = identity
			return session
		}
	}
	return session
}

func (u *sessionUsecase) SetSearchQuery(token, query string) {
	if token == "" {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if query == "" {
		delete(u.searches, token)
		return
	}
	u.searches[token] = query
}

func (u *sessionUsecase) searchQuery(token string) string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.searches[token]
}
