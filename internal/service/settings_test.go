package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestValidSettingKey(t *testing.T) {
	require.True(t, ValidSettingKey("site.title"))
	require.True(t, ValidSettingKey("contact_email"))
	require.False(t, ValidSettingKey(""))
	require.False(t, ValidSettingKey("Site"))
	require.False(t, ValidSettingKey("a b"))
}

func TestGetSettings(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c, kv := cache.MemoryCache()

	loads := 0
	listSettings = func(context.Context, database.Querier) (model.Settings, error) {
		loads++
		return model.Settings{"site.title": "Hi"}, nil
	}

	s, err := GetSettings(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Equal(t, "Hi", s["site.title"])
	require.JSONEq(t, `{"site.title":"Hi"}`, kv[SettingsCacheKey])

	s, err = GetSettings(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Equal(t, "Hi", s["site.title"])
	require.Equal(t, 1, loads)

	kv[SettingsCacheKey] = "{broken"
	_, err = GetSettings(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Equal(t, 2, loads)
}

func TestGetSettingsCacheDown(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	down := errors.New("connection refused")
	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("", down) },
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd { return redis.NewStatusResult("", down) },
	}
	listSettings = func(context.Context, database.Querier) (model.Settings, error) {
		return model.Settings{"a": "1"}, nil
	}
	s, err := GetSettings(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Equal(t, "1", s["a"])

	listSettings = func(context.Context, database.Querier) (model.Settings, error) { return nil, errors.New("db") }
	_, err = GetSettings(ctx, &database.FakeDB{}, c)
	require.ErrorContains(t, err, "GetSettings")
}

func TestSaveSettings(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c, kv := cache.MemoryCache()
	kv[SettingsCacheKey] = `{"old":"1"}`

	var order []string
	upsertSetting = func(_ context.Context, _ database.Querier, k, v string) error {
		order = append(order, k+"="+v)
		return nil
	}
	listSettings = func(context.Context, database.Querier) (model.Settings, error) {
		return model.Settings{"a": "1", "b": "2"}, nil
	}

	tx := &database.FakeTx{}
	s, err := SaveSettings(ctx, database.TxDB(tx), c, map[string]string{"b": "2", "a": "1"})
	require.NoError(t, err)
	require.Equal(t, []string{"a=1", "b=2"}, order)
	require.Len(t, s, 2)
	require.True(t, tx.Committed)
	require.NotContains(t, kv, SettingsCacheKey)

	_, err = SaveSettings(ctx, nil, c, map[string]string{"Bad Key": "x"})
	require.ErrorIs(t, err, ErrInvalidSettingKey)

	upsertSetting = func(context.Context, database.Querier, string, string) error { return errors.New("db") }
	kv[SettingsCacheKey] = `{"old":"1"}`
	tx = &database.FakeTx{}
	_, err = SaveSettings(ctx, database.TxDB(tx), c, map[string]string{"a": "1"})
	require.Error(t, err)
	require.True(t, tx.RolledBack)
	require.Contains(t, kv, SettingsCacheKey)
}
