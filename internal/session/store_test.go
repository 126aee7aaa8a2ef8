package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saifr72000/airsense-platform/internal/store"
)

func setupStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(store.NewRedisKV(client), ttl), mr
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := setupStore(t, time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, "u-1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "u-1", sess.UserID)
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

	loaded, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, "u-1", loaded.UserID)

	require.NoError(t, s.Delete(ctx, sess.ID))

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionExpiry(t *testing.T) {
	s, mr := setupStore(t, time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx, "u-1")
	require.NoError(t, err)

	// Redis enforces the TTL; fast-forward past it
	mr.FastForward(2 * time.Minute)

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_EmptyUser(t *testing.T) {
	s, _ := setupStore(t, time.Hour)

	_, err := s.Create(context.Background(), "")
	assert.Error(t, err)
}

func TestGet_EmptyToken(t *testing.T) {
	s, _ := setupStore(t, time.Hour)

	_, err := s.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}
