//go:build integration

package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisTokenStore(t *testing.T) {
	client := startRedis(t)
	store := service.NewRedisTokenStore(client)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("access tokens can be revoked", func(t *testing.T) {
		require.NoError(t, store.StoreAccessToken(ctx, userID, "a1", time.Minute))
		require.NoError(t, store.StoreRefreshToken(ctx, userID, "r1", time.Minute))

		ok, err := store.AccessTokenExists(ctx, userID, "a1")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, store.RevokeTokens(ctx, userID, "a1", "r1"))
		ok, err = store.AccessTokenExists(ctx, userID, "a1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, store.ConsumeRefreshToken(ctx, userID, "r1"), service.ErrTokenNotFound)
	})

	t.Run("refresh tokens are single use", func(t *testing.T) {
		require.NoError(t, store.StoreRefreshToken(ctx, userID, "r2", time.Minute))
		require.NoError(t, store.ConsumeRefreshToken(ctx, userID, "r2"))
		assert.ErrorIs(t, store.ConsumeRefreshToken(ctx, userID, "r2"), service.ErrTokenNotFound)
	})

	t.Run("revoke all", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, store.StoreAccessToken(ctx, userID, fmt.Sprintf("bulk-%d", i), time.Minute))
		}
		require.NoError(t, store.RevokeAll(ctx, userID))
		ok, err := store.AccessTokenExists(ctx, userID, "bulk-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("email verification tokens", func(t *testing.T) {
		require.NoError(t, store.SaveEmailVerificationToken(ctx, "tok", userID, time.Minute))
		id, err := store.ConsumeEmailVerificationToken(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, userID, id)

		_, err = store.ConsumeEmailVerificationToken(ctx, "tok")
		assert.ErrorIs(t, err, service.ErrTokenNotFound)
	})

	t.Run("oauth state", func(t *testing.T) {
		require.NoError(t, store.SaveOAuthState(ctx, "state", time.Minute))
		require.NoError(t, store.ConsumeOAuthState(ctx, "state"))
		assert.ErrorIs(t, store.ConsumeOAuthState(ctx, "state"), service.ErrTokenNotFound)
	})
}
