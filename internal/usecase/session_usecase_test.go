package usecase_test

import (
	"context"
	"errors"
	"testing"

	"mancarijo/internal/domain"
	"mancarijo/internal/repository/session"
	"mancarijo/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionUsecase(t *testing.T) {
	ctx := context.Background()
	identity := domain.Identity{ID: "u1", Username: "budi", Role: domain.RoleJobSeeker}

	newStore := func() (domain.SessionUsecase, domain.SessionTier, domain.SessionTier) {
		ephemeral := session.NewMemoryTier("ephemeral")
		durable := session.NewMemoryTier("durable")
		return usecase.NewSessionUsecase(ephemeral, durable, nil), ephemeral, durable
	}

	t.Run("Should be anonymous without a sign-in", func(t *testing.T) {
		uc, _, _ := newStore()
		s := uc.Current(ctx, "tok")
		assert.False(t, s.SignedIn())
		assert.Equal(t, "tok", s.Token)
	})

	t.Run("Should store a remembered sign-in only in the durable tier", func(t *testing.T) {
		uc, ephemeral, durable := newStore()
		_, err := uc.SignIn(ctx, "tok", identity, domain.PersistenceDurable)
		require.NoError(t, err)

		got, _ := durable.Load(ctx, "tok")
		assert.Equal(t, &identity, got)
		got, _ = ephemeral.Load(ctx, "tok")
		assert.Nil(t, got)

		assert.Equal(t, "u1", uc.Current(ctx, "tok").UserID())
	})

	t.Run("Should store a plain sign-in only in the ephemeral tier", func(t *testing.T) {
		uc, ephemeral, durable := newStore()
		_, err := uc.SignIn(ctx, "tok", identity, domain.PersistenceEphemeral)
		require.NoError(t, err)

		got, _ := ephemeral.Load(ctx, "tok")
		assert.Equal(t, &identity, got)
		got, _ = durable.Load(ctx, "tok")
		assert.Nil(t, got)
	})

	t.Run("Should prefer the ephemeral tier when both hold an identity", func(t *testing.T) {
		uc, ephemeral, durable := newStore()
		require.NoError(t, durable.Save(ctx, "tok", domain.Identity{ID: "old"}))
		require.NoError(t, ephemeral.Save(ctx, "tok", domain.Identity{ID: "new"}))

		assert.Equal(t, "new", uc.Current(ctx, "tok").UserID())
	})

	t.Run("Should clear both tiers on sign-out", func(t *testing.T) {
		uc, ephemeral, durable := newStore()
		require.NoError(t, durable.Save(ctx, "tok", identity))
		require.NoError(t, ephemeral.Save(ctx, "tok", identity))
		uc.SetSearchQuery("tok", "driver")

		uc.SignOut(ctx, "tok")
		s := uc.Current(ctx, "tok")
		assert.False(t, s.SignedIn())
		assert.Empty(t, s.SearchQuery)
	})

	t.Run("Should sign out an anonymous session", func(t *testing.T) {
		uc, _, _ := newStore()
		uc.SignOut(ctx, "never-signed-in")
		assert.False(t, uc.Current(ctx, "never-signed-in").SignedIn())
	})

	t.Run("Should still clear the ephemeral tier when the durable tier is down", func(t *testing.T) {
		ephemeral := session.NewMemoryTier("ephemeral")
		uc := usecase.NewSessionUsecase(ephemeral, brokenTier{}, nil)
		require.NoError(t, ephemeral.Save(ctx, "tok", identity))
		uc.SetSearchQuery("tok", "driver")

		uc.SignOut(ctx, "tok")
		got, _ := ephemeral.Load(ctx, "tok")
		assert.Nil(t, got)
		assert.Empty(t, uc.Current(ctx, "tok").SearchQuery)
	})

	t.Run("Should refresh the identity in the tier that holds it", func(t *testing.T) {
		uc, ephemeral, durable := newStore()
		_, err := uc.SignIn(ctx, "tok", identity, domain.PersistenceDurable)
		require.NoError(t, err)

		renamed := identity
		renamed.Username = "budi2"
		require.NoError(t, uc.Refresh(ctx, "tok", renamed))

		got, _ := durable.Load(ctx, "tok")
		assert.Equal(t, "budi2", got.Username)
		got, _ = ephemeral.Load(ctx, "tok")
		assert.Nil(t, got)
	})

	t.Run("Should not sign in a token on refresh", func(t *testing.T) {
		uc, _, _ := newStore()
		require.NoError(t, uc.Refresh(ctx, "tok", identity))
		assert.False(t, uc.Current(ctx, "tok").SignedIn())
	})

	t.Run("Should keep the search query per session", func(t *testing.T) {
		uc, _, _ := newStore()
		uc.SetSearchQuery("a", "driver")
		assert.Equal(t, "driver", uc.Current(ctx, "a").SearchQuery)
		assert.Empty(t, uc.Current(ctx, "b").SearchQuery)

		uc.SetSearchQuery("a", "")
		assert.Empty(t, uc.Current(ctx, "a").SearchQuery)
	})

	t.Run("Should refuse an empty token", func(t *testing.T) {
		uc, _, _ := newStore()
		_, err := uc.SignIn(ctx, "", identity, domain.PersistenceEphemeral)
		assert.Error(t, err)
	})
}

// brokenTier stands in for an unreachable redis.
type brokenTier struct{}

func (brokenTier) Name() string { return "durable" }

func (brokenTier) Load(context.Context, string) (*domain.Identity, error) {
	return nil, errors.New("redis down")
}

func (brokenTier) Save(context.Context, string, domain.Identity) error {
	return errors.New("redis down")
}

func (brokenTier) Delete(context.Context, string) error {
	return errors.New("redis down")
}
