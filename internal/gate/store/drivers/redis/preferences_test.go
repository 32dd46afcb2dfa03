package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/idx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// setupTestRedis connects to REDIS_ADDR (default localhost:6379) and skips the
// test when nothing answers.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPreferences_SetAndGet(t *testing.T) {
	client := setupTestRedis(t)
	prefix := "test:" + idx.New().String() + ":"
	prefs := NewPreferencesWithPrefix(client, prefix)
	ctx := context.Background()
	t.Cleanup(func() { client.Del(ctx, prefix+"user-1") })

	_, err := prefs.GetPreference(ctx, "user-1", domain.PrefMFABannerDismissed)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, prefs.SetPreference(ctx, domain.Preference{UserID: "user-1", Key: domain.PrefMFABannerDismissed, Value: "true"}))

	got, err := prefs.GetPreference(ctx, "user-1", domain.PrefMFABannerDismissed)
	require.NoError(t, err)
	require.Equal(t, "true", got.Value)
	require.WithinDuration(t, time.Now(), got.UpdatedAt, 5*time.Second)
	require.NoError(t, prefs.Ping(ctx))
}

func TestPreferences_RejectsEmptyKeys(t *testing.T) {
	client := setupTestRedis(t)
	prefs := NewPreferences(client)

	require.Error(t, prefs.SetPreference(context.Background(), domain.Preference{Key: "x"}))
	_, err := prefs.GetPreference(context.Background(), "", "x")
	require.ErrorIs(t, err, store.ErrNotFound)
}
