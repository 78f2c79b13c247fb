package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRows struct{}

func (fakeRows) Close()                                       {}
func (fakeRows) Err() error                                   { return nil }
func (fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fakeRows) Next() bool                                   { return false }
func (fakeRows) Scan(dest ...any) error                       { return nil }
func (fakeRows) Values() ([]any, error)                       { return nil, nil }
func (fakeRows) RawValues() [][]byte                          { return nil }
func (fakeRows) Conn() *pgx.Conn                              { return nil }

func TestFakeDB(t *testing.T) {
	db := &FakeDB{}
	require.Panics(t, func() { db.Exec(context.Background(), "") })
	require.Panics(t, func() { db.Query(context.Background(), "") })
	require.Panics(t, func() { db.QueryRow(context.Background(), "") })
	require.Panics(t, func() { db.Begin(context.Background()) })
	require.Panics(t, func() { db.Ping(context.Background()) })
	db.Close()

	called := map[string]bool{}
	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		called["exec"] = true
		return pgconn.CommandTag{}, errors.New("e")
	}
	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		called["query"] = true
		return fakeRows{}, nil
	}
	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		called["row"] = true
		return fakeRows{}
	}
	db.BeginFn = func(context.Context) (pgx.Tx, error) {
		called["begin"] = true
		return &FakeTx{}, nil
	}
	db.PingFn = func(context.Context) error { called["ping"] = true; return nil }
	db.CloseFn = func() { called["close"] = true }

	_, err := db.Exec(context.Background(), "sql")
	require.Error(t, err)
	_, err = db.Query(context.Background(), "sql")
	require.NoError(t, err)
	_ = db.QueryRow(context.Background(), "sql")
	_, err = db.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	db.Close()

	for _, k := range []string{"exec", "query", "row", "begin", "ping", "close"} {
		require.True(t, called[k], k)
	}
}

func TestFakeTxWithBeginFunc(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		tx := &FakeTx{}
		err := pgx.BeginFunc(context.Background(), TxDB(tx), func(pgx.Tx) error { return nil })
		require.NoError(t, err)
		require.True(t, tx.Committed)
		require.False(t, tx.RolledBack)
	})

	t.Run("fn error rolls back", func(t *testing.T) {
		tx := &FakeTx{}
		err := pgx.BeginFunc(context.Background(), TxDB(tx), func(pgx.Tx) error { return errors.New("boom") })
		require.EqualError(t, err, "boom")
		require.False(t, tx.Committed)
		require.True(t, tx.RolledBack)
	})

	t.Run("commit error", func(t *testing.T) {
		tx := &FakeTx{CommitErr: errors.New("commit")}
		err := pgx.BeginFunc(context.Background(), TxDB(tx), func(pgx.Tx) error { return nil })
		require.Error(t, err)
		require.False(t, tx.Committed)
	})

	t.Run("unset methods panic", func(t *testing.T) {
		tx := &FakeTx{}
		require.Panics(t, func() { tx.Exec(context.Background(), "") })
		require.Panics(t, func() { tx.QueryRow(context.Background(), "") })
		require.Panics(t, func() { tx.Query(context.Background(), "") })
	})
}
