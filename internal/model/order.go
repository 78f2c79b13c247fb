// File: internal/model/order.go
package model

import "time"

const (
	PaymentWallet = "wallet"
	PaymentManual = "manual"
)

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

type Order struct {
	ID             int        `db:"id" json:"id"`
	Reference      string     `db:"reference" json:"reference"`
	UserID         int        `db:"user_id" json:"user_id"`
	CourseID       int        `db:"course_id" json:"course_id"`
	AmountCents    int64      `db:"amount_cents" json:"amount_cents"`
	PaymentMethod  string     `db:"payment_method" json:"payment_method"`
	Status         string     `db:"status" json:"status"`
	IdempotencyKey *string    `db:"idempotency_key" json:"-"`
	PaidAt         *time.Time `db:"paid_at" json:"paid_at"`
	CancelledAt    *time.Time `db:"cancelled_at" json:"cancelled_at"`
	RefundedAt     *time.Time `db:"refunded_at" json:"refunded_at"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

var orderTransitions = map[string][]string{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderRefunded},
}

// CanTransition 回傳訂單是否可從 from 轉為 to
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
