package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_UpsertGetRevoke(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:refresh:")

	ctx := context.Background()
	rec := &RefreshRecord{
		UserID:    1,
		Token:     "tok-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "tok-1", got.Token)
	require.False(t, got.IsRevoked)
	require.WithinDuration(t, rec.ExpiresAt, got.ExpiresAt, time.Second)

	require.NoError(t, repo.Revoke(ctx, 1))
	got2, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got2)
	require.True(t, got2.IsRevoked)
	// the token itself stays on the row
	require.Equal(t, "tok-1", got2.Token)
}

func TestRedisRepository_UpsertOverwritesAndClearsRevocation(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "")

	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &RefreshRecord{UserID: 7, Token: "old", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Revoke(ctx, 7))

	// new login replaces the token and resets the revoked flag
	require.NoError(t, repo.Upsert(ctx, &RefreshRecord{UserID: 7, Token: "new", ExpiresAt: time.Now().Add(time.Hour)}))

	got, err := repo.GetByUser(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "new", got.Token)
	require.False(t, got.IsRevoked)
}

func TestRedisRepository_MissingUser(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "")

	got, err := repo.GetByUser(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, got)
}
