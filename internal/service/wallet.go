// File: internal/service/wallet.go
package service

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	lockWallet              = store.LockWallet
	setWalletBalance        = store.SetWalletBalance
	insertWalletTransaction = store.InsertWalletTransaction
)

// applyWalletChange 鎖定錢包、更新餘額並寫入一筆交易紀錄；必須在交易內呼叫
// amount 一律為正數，入帳或扣款由 txType 決定
func applyWalletChange(ctx context.Context, q database.Querier, userID int, amount int64, txType, description string, reference *string) (*model.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	delta := amount
	if !model.IsCredit(txType) {
		delta = -amount
	}

	if err := ensureWallet(ctx, q, userID); err != nil {
		return nil, err
	}
	balance, err := lockWallet(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	next := balance + delta
	if next < 0 {
		return nil, ErrInsufficientBalance
	}
	if err := setWalletBalance(ctx, q, userID, next); err != nil {
		return nil, err
	}

	return insertWalletTransaction(ctx, q, &model.WalletTransaction{
		UserID:            userID,
		Type:              txType,
		AmountCents:       amount,
		BalanceAfterCents: next,
		Description:       description,
		Reference:         reference,
	})
}

// Deposit 儲值；同一個 payment reference 只能入帳一次
func Deposit(ctx context.Context, db database.DB, userID int, amountCents int64, gateway, reference string) (*model.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	var tx *model.WalletTransaction
	err := pgx.BeginFunc(ctx, db, func(q pgx.Tx) error {
		var err error
		tx, err = applyWalletChange(ctx, q, userID, amountCents, model.TxDeposit, "deposit via "+gateway, &reference)
		return err
	})
	if store.IsUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}
	return tx, nil
}

// AdjustWallet 管理員調整餘額；正數為 admin_credit，負數為 admin_debit
func AdjustWallet(ctx context.Context, db database.DB, userID int, amountCents int64, reason string) (*model.WalletTransaction, error) {
	if amountCents == 0 {
		return nil, ErrInvalidAmount
	}
	txType, amount := model.TxAdminCredit, amountCents
	if amountCents < 0 {
		txType, amount = model.TxAdminDebit, -amountCents
	}
	var tx *model.WalletTransaction
	err := pgx.BeginFunc(ctx, db, func(q pgx.Tx) error {
		var err error
		tx, err = applyWalletChange(ctx, q, userID, amount, txType, reason, nil)
		return err
	})
	if store.IsForeignKeyViolation(err) {
		return nil, fmt.Errorf("AdjustWallet: user %d: %w", userID, pgx.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("AdjustWallet: %w", err)
	}
	return tx, nil
}
