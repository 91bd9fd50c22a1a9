package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/apperrors"
)

func newTestCredentialStore(t *testing.T) (*CredentialStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// 测试用低成本参数
	return NewCredentialStore(client, NewArgon2idHasher(1, 1024, 16, 8, 1)), mr
}

func TestCredentialStore_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	store, mr := newTestCredentialStore(t)
	ctx := context.Background()

	require.NoError(t, store.Register(ctx, "Ayşe", "s3cret"))

	// 不保存明文
	stored := mr.HGet(credentialsKey, "ayşe")
	assert.NotEmpty(t, stored)
	assert.NotContains(t, stored, "s3cret")

	assert.NoError(t, store.Login(ctx, "ayşe", "s3cret"))
	assert.NoError(t, store.Login(ctx, "  AYŞE ", "s3cret"))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCredentialStore_DuplicateUser(t *testing.T) {
	t.Parallel()

	store, _ := newTestCredentialStore(t)
	ctx := context.Background()

	require.NoError(t, store.Register(ctx, "burak", "one"))
	assert.ErrorIs(t, store.Register(ctx, "Burak", "two"), apperrors.ErrUserExists)

	// 原密码不受影响
	assert.NoError(t, store.Login(ctx, "burak", "one"))
}

func TestCredentialStore_InvalidCredentials(t *testing.T) {
	t.Parallel()

	store, _ := newTestCredentialStore(t)
	ctx := context.Background()
	require.NoError(t, store.Register(ctx, "cem", "right"))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "cem", "wrong"},
		{"unknown user", "nobody", "right"},
		{"empty username", "  ", "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.Login(ctx, tt.username, tt.password), apperrors.ErrInvalidCredentials)
		})
	}
}

func TestCredentialStore_RegisterValidation(t *testing.T) {
	t.Parallel()

	store, _ := newTestCredentialStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Register(ctx, "", "pw"), apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, store.Register(ctx, "deniz", ""), apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, store.Register(ctx, "abcdefghijklmnopqrstuvwxyz", "pw"), apperrors.ErrInvalidCredentials)
}

func TestCredentialStore_RedisDown(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewCredentialStore(client, NewArgon2idHasher(1, 1024, 16, 8, 1))

	err := store.Login(context.Background(), "x", "y")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
