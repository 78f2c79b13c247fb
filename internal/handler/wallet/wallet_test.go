package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/handlertest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func restore() {
	ensureWallet = store.EnsureWallet
	getWallet = store.GetWallet
	listWalletTransactions = store.ListWalletTransactions
	deposit = service.Deposit
	adjustWallet = service.AdjustWallet
}

func TestGetWalletHandler(t *testing.T) {
	t.Cleanup(restore)

	c, rec := handlertest.New(http.MethodGet, "/wallet", "")
	require.NoError(t, GetWalletHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusUnauthorized, msgUnauthorized)

	ensured := 0
	ensureWallet = func(_ context.Context, _ database.Querier, id int) error {
		ensured = id
		return nil
	}
	getWallet = func(_ context.Context, _ database.Querier, id int) (*model.Wallet, error) {
		return &model.Wallet{UserID: id, BalanceCents: 0, Currency: model.WalletCurrency}, nil
	}
	c, rec = handlertest.New(http.MethodGet, "/wallet", "")
	require.NoError(t, GetWalletHandler(nil)(handlertest.AsUser(c, 8)))
	var w model.Wallet
	handlertest.Data(t, rec, &w)
	require.Equal(t, 8, ensured)
	require.Equal(t, "TWD", w.Currency)

	ensureWallet = func(context.Context, database.Querier, int) error { return errors.New("db") }
	c, rec = handlertest.New(http.MethodGet, "/wallet", "")
	require.NoError(t, GetWalletHandler(nil)(handlertest.AsUser(c, 8)))
	handlertest.Expect(t, rec, http.StatusInternalServerError, "")
}

func TestListTransactionsHandler(t *testing.T) {
	t.Cleanup(restore)
	listWalletTransactions = func(_ context.Context, _ database.Querier, userID int, txType string, _ store.ListParams) ([]model.WalletTransaction, int, error) {
		require.Equal(t, 2, userID)
		require.Equal(t, model.TxDeposit, txType)
		return []model.WalletTransaction{{ID: 1, Type: txType}}, 1, nil
	}

	c, rec := handlertest.New(http.MethodGet, "/?type=gift", "")
	require.NoError(t, ListTransactionsHandler(nil)(handlertest.AsUser(c, 2)))
	handlertest.Expect(t, rec, http.StatusBadRequest, "invalid transaction type")

	c, rec = handlertest.New(http.MethodGet, "/?type=deposit", "")
	require.NoError(t, ListTransactionsHandler(nil)(handlertest.AsUser(c, 2)))
	handlertest.Expect(t, rec, http.StatusOK, "ok")
}

func TestDepositHandler(t *testing.T) {
	const body = `{"amount_cents":5000,"payment_gateway":"stripe","payment_reference":" pi_1 "}`

	cases := []struct {
		name string
		body string
		err  error
		code int
		msg  string
	}{
		{"ok", body, nil, http.StatusCreated, "deposit completed"},
		{"duplicate", body, service.ErrDuplicateReference, http.StatusBadRequest, service.ErrDuplicateReference.Error()},
		{"zero", `{"amount_cents":0,"payment_gateway":"s","payment_reference":"r"}`, nil, http.StatusBadRequest, "amount_cents is required"},
		{"negative", `{"amount_cents":-1,"payment_gateway":"s","payment_reference":"r"}`, nil, http.StatusBadRequest, "amount_cents must be greater than 0"},
		{"missing reference", `{"amount_cents":1,"payment_gateway":"s"}`, nil, http.StatusBadRequest, "payment_reference is required"},
		{"bad json", `{`, nil, http.StatusBadRequest, "invalid request body"},
		{"db", body, errors.New("db"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			deposit = func(_ context.Context, _ database.DB, userID int, amount int64, gateway, reference string) (*model.WalletTransaction, error) {
				require.Equal(t, "pi_1", reference)
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.WalletTransaction{UserID: userID, AmountCents: amount, BalanceAfterCents: amount, Type: model.TxDeposit}, nil
			}
			c, rec := handlertest.New(http.MethodPost, "/", tc.body)
			require.NoError(t, DepositHandler(nil)(handlertest.AsUser(c, 1)))
			handlertest.Expect(t, rec, tc.code, tc.msg)
		})
	}
}

func TestAdjustmentHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"ok", nil, http.StatusCreated},
		{"overdraft", fmt.Errorf("AdjustWallet: %w", service.ErrInsufficientBalance), http.StatusBadRequest},
		{"unknown user", fmt.Errorf("AdjustWallet: user 4: %w", pgx.ErrNoRows), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			adjustWallet = func(_ context.Context, _ database.DB, userID int, amount int64, reason string) (*model.WalletTransaction, error) {
				require.Equal(t, 4, userID)
				require.Equal(t, int64(-300), amount)
				require.Equal(t, "fix", reason)
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.WalletTransaction{Type: model.TxAdminDebit, AmountCents: 300}, nil
			}
			c, rec := handlertest.New(http.MethodPost, "/", `{"amount_cents":-300,"reason":" fix "}`)
			require.NoError(t, AdjustmentHandler(nil)(handlertest.Params(c, "user_id", "4")))
			handlertest.Expect(t, rec, tc.code, "")
		})
	}

	c, rec := handlertest.New(http.MethodPost, "/", `{"amount_cents":0,"reason":"x"}`)
	require.NoError(t, AdjustmentHandler(nil)(handlertest.Params(c, "user_id", "4")))
	handlertest.Expect(t, rec, http.StatusBadRequest, "amount_cents is required")
}
