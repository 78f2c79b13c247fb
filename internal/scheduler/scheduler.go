// File: internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/service"

	"github.com/robfig/cron/v3"
)

var expirePendingOrders = service.ExpirePendingOrders

// Scheduler 以 cron 執行定期工作
type Scheduler struct {
	cron *cron.Cron
}

// New 註冊待付款訂單逾期取消的工作；spec 為標準五欄 cron 格式
func New(spec string, db database.Querier, pendingTTL time.Duration) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { expireOrders(db, pendingTTL) }); err != nil {
		return nil, fmt.Errorf("scheduler: order expiry %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func expireOrders(db database.Querier, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := expirePendingOrders(ctx, db, ttl)
	if err != nil {
		slog.Error("expire pending orders failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("expired pending orders", "count", n, "older_than", ttl.String())
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止排程並等待執行中的工作結束
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
