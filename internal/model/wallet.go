// File: internal/model/wallet.go
package model

import "time"

// WalletCurrency 錢包只有單一幣別
const WalletCurrency = "TWD"

const (
	TxDeposit     = "deposit"
	TxPurchase    = "purchase"
	TxRefund      = "refund"
	TxAdminCredit = "admin_credit"
	TxAdminDebit  = "admin_debit"
)

type Wallet struct {
	UserID       int       `db:"user_id" json:"user_id"`
	BalanceCents int64     `db:"balance_cents" json:"balance_cents"`
	Currency     string    `json:"currency"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type WalletTransaction struct {
	ID                int       `db:"id" json:"id"`
	UserID            int       `db:"user_id" json:"user_id"`
	Type              string    `db:"type" json:"type"`
	AmountCents       int64     `db:"amount_cents" json:"amount_cents"`
	BalanceAfterCents int64     `db:"balance_after_cents" json:"balance_after_cents"`
	Description       string    `db:"description" json:"description"`
	Reference         *string   `db:"reference" json:"reference"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// IsCredit 回傳此類型是否增加餘額
func IsCredit(txType string) bool {
	switch txType {
	case TxDeposit, TxRefund, TxAdminCredit:
		return true
	}
	return false
}

// ValidTxType 用於交易列表的 type 篩選
func ValidTxType(t string) bool {
	switch t {
	case TxDeposit, TxPurchase, TxRefund, TxAdminCredit, TxAdminDebit:
		return true
	}
	return false
}
