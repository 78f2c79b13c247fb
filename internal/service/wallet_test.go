package service

import (
	"context"
	"errors"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeLedger 以記憶體模擬錢包，記錄寫入的交易
type fakeLedger struct {
	balance  int64
	inserted []model.WalletTransaction
}

func stubLedger(balance int64) *fakeLedger {
	l := &fakeLedger{balance: balance}
	ensureWallet = func(context.Context, database.Querier, int) error { return nil }
	lockWallet = func(context.Context, database.Querier, int) (int64, error) { return l.balance, nil }
	setWalletBalance = func(_ context.Context, _ database.Querier, _ int, b int64) error {
		l.balance = b
		return nil
	}
	insertWalletTransaction = func(_ context.Context, _ database.Querier, t *model.WalletTransaction) (*model.WalletTransaction, error) {
		t.ID = len(l.inserted) + 1
		l.inserted = append(l.inserted, *t)
		return t, nil
	}
	return l
}

func TestApplyWalletChange(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	l := stubLedger(100)
	tx, err := applyWalletChange(ctx, nil, 1, 40, model.TxPurchase, "buy", nil)
	require.NoError(t, err)
	require.Equal(t, int64(40), tx.AmountCents)
	require.Equal(t, int64(60), tx.BalanceAfterCents)
	require.Equal(t, int64(60), l.balance)

	_, err = applyWalletChange(ctx, nil, 1, 61, model.TxPurchase, "buy", nil)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, int64(60), l.balance)
	require.Len(t, l.inserted, 1)

	_, err = applyWalletChange(ctx, nil, 1, 60, model.TxAdminDebit, "zero", nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), l.balance)

	tx, err = applyWalletChange(ctx, nil, 1, 25, model.TxRefund, "refund", nil)
	require.NoError(t, err)
	require.Equal(t, int64(25), tx.AmountCents)
	require.Equal(t, int64(25), l.balance)

	for _, amount := range []int64{0, -5} {
		_, err = applyWalletChange(ctx, nil, 1, amount, model.TxDeposit, "", nil)
		require.ErrorIs(t, err, ErrInvalidAmount)
	}
	require.Equal(t, int64(25), l.balance)

	boom := errors.New("boom")
	ensureWallet = func(context.Context, database.Querier, int) error { return boom }
	_, err = applyWalletChange(ctx, nil, 1, 1, model.TxDeposit, "", nil)
	require.ErrorIs(t, err, boom)

	stubLedger(0)
	lockWallet = func(context.Context, database.Querier, int) (int64, error) { return 0, boom }
	_, err = applyWalletChange(ctx, nil, 1, 1, model.TxDeposit, "", nil)
	require.ErrorIs(t, err, boom)

	stubLedger(0)
	setWalletBalance = func(context.Context, database.Querier, int, int64) error { return boom }
	_, err = applyWalletChange(ctx, nil, 1, 1, model.TxDeposit, "", nil)
	require.ErrorIs(t, err, boom)
}

func TestDeposit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	_, err := Deposit(ctx, nil, 1, 0, "stripe", "r")
	require.ErrorIs(t, err, ErrInvalidAmount)

	l := stubLedger(10)
	tx := &database.FakeTx{}
	got, err := Deposit(ctx, database.TxDB(tx), 1, 90, "stripe", "pay_1")
	require.NoError(t, err)
	require.True(t, tx.Committed)
	require.Equal(t, model.TxDeposit, got.Type)
	require.Equal(t, "pay_1", *got.Reference)
	require.Equal(t, "deposit via stripe", got.Description)
	require.Equal(t, int64(100), l.balance)

	insertWalletTransaction = func(context.Context, database.Querier, *model.WalletTransaction) (*model.WalletTransaction, error) {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	tx = &database.FakeTx{}
	_, err = Deposit(ctx, database.TxDB(tx), 1, 5, "stripe", "pay_1")
	require.ErrorIs(t, err, ErrDuplicateReference)
	require.True(t, tx.RolledBack)

	insertWalletTransaction = func(context.Context, database.Querier, *model.WalletTransaction) (*model.WalletTransaction, error) {
		return nil, errors.New("db")
	}
	_, err = Deposit(ctx, database.TxDB(&database.FakeTx{}), 1, 5, "stripe", "pay_2")
	require.ErrorContains(t, err, "Deposit")
}

func TestAdjustWallet(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	_, err := AdjustWallet(ctx, nil, 1, 0, "noop")
	require.ErrorIs(t, err, ErrInvalidAmount)

	l := stubLedger(50)
	got, err := AdjustWallet(ctx, database.TxDB(&database.FakeTx{}), 1, 25, "bonus")
	require.NoError(t, err)
	require.Equal(t, model.TxAdminCredit, got.Type)
	require.Nil(t, got.Reference)
	require.Equal(t, int64(75), l.balance)

	got, err = AdjustWallet(ctx, database.TxDB(&database.FakeTx{}), 1, -75, "correction")
	require.NoError(t, err)
	require.Equal(t, model.TxAdminDebit, got.Type)
	require.Equal(t, int64(75), got.AmountCents)
	require.Equal(t, int64(0), l.balance)

	tx := &database.FakeTx{}
	_, err = AdjustWallet(ctx, database.TxDB(tx), 1, -1, "too much")
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.True(t, tx.RolledBack)

	ensureWallet = func(context.Context, database.Querier, int) error { return &pgconn.PgError{Code: "23503"} }
	_, err = AdjustWallet(ctx, database.TxDB(&database.FakeTx{}), 99, 10, "ghost")
	require.True(t, store.IsNotFound(err))
	require.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestRegisterUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	var walletFor int
	createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
		u.ID = 4
		return u, nil
	}
	ensureWallet = func(_ context.Context, _ database.Querier, id int) error {
		walletFor = id
		return nil
	}
	tx := &database.FakeTx{}
	u, err := RegisterUser(ctx, database.TxDB(tx), &model.User{Name: "a"})
	require.NoError(t, err)
	require.Equal(t, 4, u.ID)
	require.Equal(t, 4, walletFor)
	require.True(t, tx.Committed)

	ensureWallet = func(context.Context, database.Querier, int) error { return errors.New("wallet") }
	tx = &database.FakeTx{}
	_, err = RegisterUser(ctx, database.TxDB(tx), &model.User{})
	require.Error(t, err)
	require.True(t, tx.RolledBack)

	createUser = func(context.Context, database.Querier, *model.User) (*model.User, error) {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	_, err = RegisterUser(ctx, database.TxDB(&database.FakeTx{}), &model.User{})
	require.True(t, store.IsUniqueViolation(err))
}
