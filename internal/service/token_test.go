package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestIssueRefreshToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c := &cache.FakeCache{}
	user := model.User{ID: 1, IsAdmin: true}

	randRead = func([]byte) (int, error) { return 0, errors.New("rand") }
	_, err := IssueRefreshToken(ctx, c, user, time.Second)
	require.Error(t, err)

	randRead = rand.Read
	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("json") }
	_, err = IssueRefreshToken(ctx, c, user, time.Second)
	require.Error(t, err)

	jsonMarshal = json.Marshal
	c.SetFn = func(context.Context, string, any, time.Duration) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("set"))
	}
	_, err = IssueRefreshToken(ctx, c, user, time.Second)
	require.Error(t, err)

	var (
		storedKey string
		storedTTL time.Duration
		storedVal []byte
	)
	c.SetFn = func(_ context.Context, key string, v any, ttl time.Duration) *redis.StatusCmd {
		storedKey, storedTTL, storedVal = key, ttl, v.([]byte)
		return redis.NewStatusResult("OK", nil)
	}
	tok, err := IssueRefreshToken(ctx, c, user, time.Hour)
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	require.Len(t, raw, 32)
	require.Equal(t, "refresh_token:"+tok, storedKey)
	require.Equal(t, time.Hour, storedTTL)
	require.JSONEq(t, `{"user_id":1,"is_admin":true,"is_super_admin":false}`, string(storedVal))
}

func TestConsumeRefreshToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	c, kv := cache.MemoryCache()
	_, err := ConsumeRefreshToken(ctx, c, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = ConsumeRefreshToken(ctx, c, "missing")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	tok, err := IssueRefreshToken(ctx, c, model.User{ID: 7, IsSuperAdmin: true}, time.Hour)
	require.NoError(t, err)
	s, err := ConsumeRefreshToken(ctx, c, tok)
	require.NoError(t, err)
	require.Equal(t, RefreshSession{UserID: 7, IsSuperAdmin: true}, *s)
	require.Empty(t, kv)

	// 已換發過的 token 不能再用
	_, err = ConsumeRefreshToken(ctx, c, tok)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestConsumeRefreshTokenErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	c := &cache.FakeCache{GetFn: func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("down"))
	}}
	_, err := ConsumeRefreshToken(ctx, c, "t")
	require.ErrorContains(t, err, "down")

	c.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult(`{"user_id":1}`, nil) }
	c.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, errors.New("del")) }
	_, err = ConsumeRefreshToken(ctx, c, "t")
	require.ErrorContains(t, err, "del")

	c.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, nil) }
	_, err = ConsumeRefreshToken(ctx, c, "t")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	c.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("{", nil) }
	c.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(1, nil) }
	_, err = ConsumeRefreshToken(ctx, c, "t")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrInvalidRefreshToken))
}

func TestRevokeRefreshToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c, kv := cache.MemoryCache()

	require.NoError(t, RevokeRefreshToken(ctx, c, "missing", 1))

	tok, err := IssueRefreshToken(ctx, c, model.User{ID: 1}, time.Hour)
	require.NoError(t, err)

	// 其他使用者的 token 不會被刪除
	require.NoError(t, RevokeRefreshToken(ctx, c, tok, 2))
	require.Len(t, kv, 1)

	require.NoError(t, RevokeRefreshToken(ctx, c, tok, 1))
	require.Empty(t, kv)

	bad := &cache.FakeCache{GetFn: func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("down"))
	}}
	require.Error(t, RevokeRefreshToken(ctx, bad, "t", 1))

	bad.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult(`{"user_id":1}`, nil) }
	bad.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, errors.New("del")) }
	require.Error(t, RevokeRefreshToken(ctx, bad, "t", 1))

	bad.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("nope", nil) }
	require.Error(t, RevokeRefreshToken(ctx, bad, "t", 1))
}
