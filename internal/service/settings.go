// File: internal/service/settings.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const (
	SettingsCacheKey = "site_settings"
	settingsCacheTTL = 10 * time.Minute
)

var (
	listSettings  = store.ListSettings
	upsertSetting = store.UpsertSetting

	settingKeyPattern = regexp.MustCompile(`^[a-z0-9_.]{1,64}$`)
)

// ValidSettingKey key 限定 64 字元內的小寫英數、底線與點
func ValidSettingKey(key string) bool {
	return settingKeyPattern.MatchString(key)
}

// GetSettings 優先讀取 Redis 快取；快取失效或錯誤時回資料庫並重建
func GetSettings(ctx context.Context, db database.Querier, c cache.Cache) (model.Settings, error) {
	raw, err := c.Get(ctx, SettingsCacheKey).Bytes()
	switch {
	case err == nil:
		var s model.Settings
		jerr := jsonUnmarshal(raw, &s)
		if jerr == nil {
			return s, nil
		}
		slog.WarnContext(ctx, "settings cache corrupted", "error", jerr)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "settings cache read failed", "error", err)
	}

	s, err := listSettings(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("GetSettings: %w", err)
	}
	if data, err := jsonMarshal(s); err == nil {
		if err := c.Set(ctx, SettingsCacheKey, data, settingsCacheTTL).Err(); err != nil {
			slog.WarnContext(ctx, "settings cache write failed", "error", err)
		}
	}
	return s, nil
}

// SaveSettings 在同一交易內寫入所有設定，成功後清除快取並回傳最新設定
func SaveSettings(ctx context.Context, db database.DB, c cache.Cache, values map[string]string) (model.Settings, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !ValidSettingKey(k) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSettingKey, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		for _, k := range keys {
			if err := upsertSetting(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SaveSettings: %w", err)
	}

	if err := c.Del(ctx, SettingsCacheKey).Err(); err != nil {
		slog.WarnContext(ctx, "settings cache invalidation failed", "error", err)
	}

	s, err := listSettings(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("SaveSettings: %w", err)
	}
	return s, nil
}
