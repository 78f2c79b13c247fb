// File: internal/service/token.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/model"

	"github.com/redis/go-redis/v9"
)

var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

const refreshTokenPrefix = "refresh_token:"

// RefreshSession 是 refresh token 在 Redis 中保存的內容
type RefreshSession struct {
	UserID       int  `json:"user_id"`
	IsAdmin      bool `json:"is_admin"`
	IsSuperAdmin bool `json:"is_super_admin"`
}

// IssueRefreshToken 產生 32 bytes 隨機 token 並寫入 Redis
func IssueRefreshToken(ctx context.Context, c cache.Cache, user model.User, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := randRead(b); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	data, err := jsonMarshal(RefreshSession{UserID: user.ID, IsAdmin: user.IsAdmin, IsSuperAdmin: user.IsSuperAdmin})
	if err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	if err := c.Set(ctx, refreshTokenPrefix+token, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	return token, nil
}

// ConsumeRefreshToken 讀出並刪除 token；每個 token 只能換發一次
func ConsumeRefreshToken(ctx context.Context, c cache.Cache, token string) (*RefreshSession, error) {
	if token == "" {
		return nil, ErrInvalidRefreshToken
	}
	key := refreshTokenPrefix + token
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("ConsumeRefreshToken: %w", err)
	}

	n, err := c.Del(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("ConsumeRefreshToken: %w", err)
	}
	// 同時兩個請求換發時只有一個能刪除成功
	if n == 0 {
		return nil, ErrInvalidRefreshToken
	}

	var s RefreshSession
	if err := jsonUnmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("ConsumeRefreshToken: %w", err)
	}
	return &s, nil
}

// RevokeRefreshToken 登出時刪除屬於 userID 的 token；不存在或不屬於該使用者時不動作
func RevokeRefreshToken(ctx context.Context, c cache.Cache, token string, userID int) error {
	key := refreshTokenPrefix + token
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	var s RefreshSession
	if err := jsonUnmarshal(raw, &s); err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	if s.UserID != userID {
		return nil
	}
	if err := c.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	return nil
}
