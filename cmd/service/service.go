// @title        Portfolio API
// @version      1.0
// @description  個人作品集與線上課程網站的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/auth"
	"portfolio-api/internal/handler/orders"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/router"
	"portfolio-api/internal/scheduler"
	"portfolio-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "portfolio-api/docs" // 註冊 swagger 文件

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

// jobScheduler 背景排程；測試以假物件取代 cron
type jobScheduler interface {
	Start()
	Stop(ctx context.Context) error
}

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newWorkerPool   = worker.NewPool
	newNotifier     = notify.New
	newScheduler    = func(spec string, db database.Querier, ttl time.Duration) (jobScheduler, error) {
		return scheduler.New(spec, db, ttl)
	}
	startServer    = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownSignal = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	exitFunc = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	log, err := newLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger 建立失敗: %w", err)
	}
	slog.SetDefault(log)

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	cc, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer cc.Close()

	if cfg.ResetDatabase {
		slog.Warn("DB_RESET_ON_START is set, rolling back all migrations")
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	n := newNotifier(cfg.NotifyWebhookURL)

	sched, err := newScheduler(cfg.OrderExpirySchedule, db, cfg.OrderPendingTTL)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sched.Stop(stopCtx); err != nil {
			slog.Warn("scheduler stop", "error", err)
		}
	}()

	e := newEcho(cfg)
	router.Setup(e, db, cc, wp, n, auth.TokenTTL{Access: cfg.AccessTokenTTL, Refresh: cfg.RefreshTokenTTL})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	slog.Info("server starting", "addr", cfg.Addr(), "workers", cfg.WorkerCount)
	return serve(e, cfg.Addr())
}

func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			orders.HeaderIdempotencyKey,
		},
	}))
	return e
}

// serve 啟動 echo，收到 SIGINT/SIGTERM 後優雅關閉
func serve(e *echo.Echo, addr string) error {
	sigCtx, stop := shutdownSignal()
	defer stop()

	errCh := make(chan error, 1)
	start := startServer
	go func() { errCh <- start(e, addr) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

func main() {
	if err := run(); err != nil {
		slog.Error("service exited", "error", err)
		exitFunc(1)
	}
}
