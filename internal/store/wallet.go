// File: internal/store/wallet.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

// EnsureWallet 建立餘額為 0 的錢包，已存在則不變
func EnsureWallet(ctx context.Context, db database.Querier, userID int) error {
	if _, err := db.Exec(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	); err != nil {
		return fmt.Errorf("EnsureWallet: %w", err)
	}
	return nil
}

func GetWallet(ctx context.Context, db database.Querier, userID int) (*model.Wallet, error) {
	w := &model.Wallet{Currency: model.WalletCurrency}
	if err := db.QueryRow(ctx,
		`SELECT user_id, balance_cents, updated_at FROM wallets WHERE user_id = $1`,
		userID,
	).Scan(&w.UserID, &w.BalanceCents, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("GetWallet: %w", err)
	}
	return w, nil
}

// LockWallet 以 FOR UPDATE 鎖定錢包列，只能在交易內使用
func LockWallet(ctx context.Context, db database.Querier, userID int) (int64, error) {
	var balance int64
	if err := db.QueryRow(ctx,
		`SELECT balance_cents FROM wallets WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&balance); err != nil {
		return 0, fmt.Errorf("LockWallet: %w", err)
	}
	return balance, nil
}

func SetWalletBalance(ctx context.Context, db database.Querier, userID int, balance int64) error {
	tag, err := db.Exec(ctx,
		`UPDATE wallets SET balance_cents = $1, updated_at = now() WHERE user_id = $2`,
		balance, userID,
	)
	return affected("SetWalletBalance", tag, err)
}

func InsertWalletTransaction(ctx context.Context, db database.Querier, t *model.WalletTransaction) (*model.WalletTransaction, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO wallet_transactions (user_id, type, amount_cents, balance_after_cents, description, reference)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		t.UserID, t.Type, t.AmountCents, t.BalanceAfterCents, t.Description, t.Reference,
	).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("InsertWalletTransaction: %w", err)
	}
	return t, nil
}

// ListWalletTransactions txType 為空字串時不篩選
func ListWalletTransactions(ctx context.Context, db database.Querier, userID int, txType string, p ListParams) ([]model.WalletTransaction, int, error) {
	rows, err := db.Query(ctx,
		`SELECT id, user_id, type, amount_cents, balance_after_cents, description, reference, created_at, COUNT(*) OVER()
		 FROM wallet_transactions
		 WHERE user_id = $1 AND ($2 = '' OR type = $2)
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3 OFFSET $4`,
		userID, txType, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListWalletTransactions: %w", err)
	}
	list, total, err := collectPage(rows, func(t *model.WalletTransaction) []any {
		return []any{&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.BalanceAfterCents, &t.Description, &t.Reference, &t.CreatedAt}
	})
	if err != nil {
		return nil, 0, fmt.Errorf("ListWalletTransactions: %w", err)
	}
	return list, total, nil
}
