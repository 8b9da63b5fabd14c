package pending

import (
	"context"
	"errors"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_CreateTake(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:pending:")

	ctx := context.Background()
	p := &Idea{Token: "t1", Idea: "a tool for dog walkers", ExpiresAt: time.Now().UTC().Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, p))
	require.True(t, m.Exists("test:pending:t1"))

	got, err := repo.Take(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "a tool for dog walkers", got.Idea)

	// second take finds nothing
	again, err := repo.Take(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, again)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "")

	ctx := context.Background()
	p := &Idea{Token: "t2", Idea: "x", ExpiresAt: time.Now().UTC().Add(2 * time.Second)}
	require.NoError(t, repo.Create(ctx, p))

	m.FastForward(3 * time.Second)

	got, err := repo.Take(ctx, "t2")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestServiceSubmitClaim(t *testing.T) {
	for name, repo := range map[string]Repository{
		"memory": NewMemoryRepository(),
		"redis": func() Repository {
			m := mr.RunT(t)
			return NewRedisRepository(redis.NewClient(&redis.Options{Addr: m.Addr()}), "")
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(repo, time.Minute)
			ctx := context.Background()

			p, err := svc.Submit(ctx, "  a tool for dog walkers ")
			require.NoError(t, err)
			require.Len(t, p.Token, 48)
			require.Equal(t, time.Minute, p.ExpiresAt.Sub(p.CreatedAt))

			var idea string
			require.NoError(t, svc.Redeem(ctx, p.Token, func(s string) error { idea = s; return nil }))
			require.Equal(t, "a tool for dog walkers", idea)

			require.ErrorIs(t, svc.Redeem(ctx, p.Token, noop), ErrNotFound)
			require.ErrorIs(t, svc.Redeem(ctx, "unknown", noop), ErrNotFound)
		})
	}
}

func TestServiceRejectsExpired(t *testing.T) {
	svc := NewService(NewMemoryRepository(), time.Minute)
	ctx := context.Background()
	p, err := svc.Submit(ctx, "idea")
	require.NoError(t, err)

	svc.now = func() time.Time { return p.ExpiresAt.Add(time.Second) }
	require.ErrorIs(t, svc.Redeem(ctx, p.Token, noop), ErrNotFound)
}

func noop(string) error { return nil }

func TestRedeemKeepsEntryWhenUseFails(t *testing.T) {
	for name, repo := range map[string]Repository{
		"memory": NewMemoryRepository(),
		"redis": func() Repository {
			m := mr.RunT(t)
			return NewRedisRepository(redis.NewClient(&redis.Options{Addr: m.Addr()}), "")
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(repo, time.Minute)
			ctx := context.Background()
			p, err := svc.Submit(ctx, "a tool for dog walkers")
			require.NoError(t, err)

			boom := errors.New("generation unavailable")
			err = svc.Redeem(ctx, p.Token, func(string) error { return boom })
			require.ErrorIs(t, err, boom)

			var idea string
			require.NoError(t, svc.Redeem(ctx, p.Token, func(s string) error { idea = s; return nil }))
			require.Equal(t, "a tool for dog walkers", idea)
			require.ErrorIs(t, svc.Redeem(ctx, p.Token, noop), ErrNotFound)
		})
	}
}
