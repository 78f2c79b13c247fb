package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/service"

	"github.com/stretchr/testify/require"
)

func restore() {
	expirePendingOrders = service.ExpirePendingOrders
}

func TestNew(t *testing.T) {
	_, err := New("not a spec", &database.FakeDB{}, time.Hour)
	require.ErrorContains(t, err, "order expiry")

	s, err := New("*/15 * * * *", &database.FakeDB{}, time.Hour)
	require.NoError(t, err)
	require.Len(t, s.cron.Entries(), 1)
}

func TestExpireJob(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	calls := 0
	expirePendingOrders = func(_ context.Context, q database.Querier, ttl time.Duration) (int64, error) {
		calls++
		require.Same(t, db, q)
		require.Equal(t, 48*time.Hour, ttl)
		return 2, nil
	}
	s, err := New("@every 1h", db, 48*time.Hour)
	require.NoError(t, err)
	s.cron.Entries()[0].Job.Run()
	require.Equal(t, 1, calls)

	expirePendingOrders = func(context.Context, database.Querier, time.Duration) (int64, error) {
		calls++
		return 0, errors.New("db")
	}
	require.NotPanics(t, func() { s.cron.Entries()[0].Job.Run() })
	require.Equal(t, 2, calls)
}

func TestStartStop(t *testing.T) {
	s, err := New("@every 1h", &database.FakeDB{}, time.Hour)
	require.NoError(t, err)
	s.Start()
	require.NoError(t, s.Stop(context.Background()))

	s, err = New("@every 1h", &database.FakeDB{}, time.Hour)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// 未啟動的 cron Stop 會立即完成；已取消的 ctx 也可能先被選到
	err = s.Stop(ctx)
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
	}
}
