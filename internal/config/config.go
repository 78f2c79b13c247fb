// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// 日誌等級與輸出類型
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// LoggerSettings 控制 slog 的輸出方式
type LoggerSettings struct {
	Level      string `validate:"required,oneof=debug info warning error"`
	Type       string `validate:"required,oneof=console file"`
	FilePath   string `validate:"required_if=Type file"`
	MaxSize    int    `validate:"min=0,max=1024"`
	MaxBackups int    `validate:"min=0,max=100"`
	MaxAge     int    `validate:"min=0,max=365"`
}

// Config 是服務啟動所需的全部設定
type Config struct {
	Port          string `validate:"required,numeric"`
	DatabaseURL   string `validate:"required"`
	// ResetDatabase 啟動時先回滾全部 migration 再重跑，只給開發環境使用
	ResetDatabase bool
	RedisAddr     string `validate:"required"`
	RedisPassword string
	RedisDB       int `validate:"min=0,max=15"`

	JWTSecret       string        `validate:"required"`
	AccessTokenTTL  time.Duration `validate:"gt=0"`
	RefreshTokenTTL time.Duration `validate:"gt=0"`

	AllowedOrigins []string `validate:"min=1,dive,required"`
	WorkerCount    int      `validate:"min=1,max=256"`

	Logger LoggerSettings

	NotifyWebhookURL    string        `validate:"omitempty,url"`
	OrderPendingTTL     time.Duration `validate:"gt=0"`
	OrderExpirySchedule string        `validate:"required"`
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

var (
	loadDotenv = godotenv.Load
	lookupEnv  = os.LookupEnv
)

// Load 先嘗試載入 .env，再從環境變數組出 Config 並驗證
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	r := &reader{}
	cfg := &Config{
		Port:          r.str("PORT", "8080"),
		DatabaseURL:   r.str("DATABASE_URL", ""),
		ResetDatabase: r.bool("DB_RESET_ON_START", false),
		RedisAddr:     r.str("REDIS_ADDR", ""),
		RedisPassword: r.str("REDIS_PASSWORD", ""),
		RedisDB:       r.int("REDIS_DB", 0),

		JWTSecret:       r.str("JWT_SECRET", ""),
		AccessTokenTTL:  r.duration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: r.duration("REFRESH_TOKEN_TTL", 720*time.Hour),

		AllowedOrigins: r.list("ALLOWED_ORIGINS", "http://localhost:3000"),
		WorkerCount:    r.int("WORKER_COUNT", 1),

		Logger: LoggerSettings{
			Level:      strings.ToLower(r.str("LOG_LEVEL", LogLevelInfo)),
			Type:       strings.ToLower(r.str("LOG_TYPE", LogTypeConsole)),
			FilePath:   r.str("LOG_FILE", ""),
			MaxSize:    r.int("LOG_MAX_SIZE", 10),
			MaxBackups: r.int("LOG_MAX_BACKUPS", 3),
			MaxAge:     r.int("LOG_MAX_AGE", 28),
		},

		NotifyWebhookURL:    r.str("NOTIFY_WEBHOOK_URL", ""),
		OrderPendingTTL:     r.duration("ORDER_PENDING_TTL", 48*time.Hour),
		OrderExpirySchedule: r.str("ORDER_EXPIRY_SCHEDULE", "*/15 * * * *"),
	}
	if r.err != nil {
		return nil, r.err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// reader 記錄第一個解析錯誤，讓 Load 不必逐一檢查
type reader struct {
	err error
}

func (r *reader) str(key, def string) string {
	if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return d
}

func (r *reader) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, def), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
