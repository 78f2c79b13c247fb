// File: internal/store/order.go
package store

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

const orderColumns = `id, reference, user_id, course_id, amount_cents, payment_method, status, idempotency_key,
 paid_at, cancelled_at, refunded_at, created_at, updated_at`

func orderDest(o *model.Order) []any {
	return []any{&o.ID, &o.Reference, &o.UserID, &o.CourseID, &o.AmountCents, &o.PaymentMethod, &o.Status, &o.IdempotencyKey,
		&o.PaidAt, &o.CancelledAt, &o.RefundedAt, &o.CreatedAt, &o.UpdatedAt}
}

// CreateOrder status 為 paid 時同時寫入 paid_at
func CreateOrder(ctx context.Context, db database.Querier, o *model.Order) (*model.Order, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO orders (reference, user_id, course_id, amount_cents, payment_method, status, idempotency_key, paid_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $6 = 'paid' THEN now() END)
		 RETURNING `+orderColumns,
		o.Reference, o.UserID, o.CourseID, o.AmountCents, o.PaymentMethod, o.Status, o.IdempotencyKey,
	).Scan(orderDest(o)...); err != nil {
		return nil, fmt.Errorf("CreateOrder: %w", err)
	}
	return o, nil
}

func GetOrder(ctx context.Context, db database.Querier, id int) (*model.Order, error) {
	o := &model.Order{}
	if err := db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`,
		id,
	).Scan(orderDest(o)...); err != nil {
		return nil, fmt.Errorf("GetOrder: %w", err)
	}
	return o, nil
}

// GetOrderForUpdate 鎖定訂單列以進行狀態轉換
func GetOrderForUpdate(ctx context.Context, db database.Querier, id int) (*model.Order, error) {
	o := &model.Order{}
	if err := db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(orderDest(o)...); err != nil {
		return nil, fmt.Errorf("GetOrderForUpdate: %w", err)
	}
	return o, nil
}

func GetOrderByIdempotencyKey(ctx context.Context, db database.Querier, userID int, key string) (*model.Order, error) {
	o := &model.Order{}
	if err := db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 AND idempotency_key = $2`,
		userID, key,
	).Scan(orderDest(o)...); err != nil {
		return nil, fmt.Errorf("GetOrderByIdempotencyKey: %w", err)
	}
	return o, nil
}

// ListOrders userID 為 0 時列出所有使用者的訂單；status 為空時不篩選
func ListOrders(ctx context.Context, db database.Querier, userID int, status string, p ListParams) ([]model.Order, int, error) {
	rows, err := db.Query(ctx,
		`SELECT `+orderColumns+`, COUNT(*) OVER()
		 FROM orders
		 WHERE ($1 = 0 OR user_id = $1) AND ($2 = '' OR status = $2)
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3 OFFSET $4`,
		userID, status, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListOrders: %w", err)
	}
	list, total, err := collectPage(rows, orderDest)
	if err != nil {
		return nil, 0, fmt.Errorf("ListOrders: %w", err)
	}
	return list, total, nil
}

// SetOrderStatus 依新狀態寫入對應的時間欄位
func SetOrderStatus(ctx context.Context, db database.Querier, id int, status string) (*model.Order, error) {
	o := &model.Order{}
	if err := db.QueryRow(ctx,
		`UPDATE orders
		 SET status = $2,
		     paid_at = CASE WHEN $2 = 'paid' THEN now() ELSE paid_at END,
		     cancelled_at = CASE WHEN $2 = 'cancelled' THEN now() ELSE cancelled_at END,
		     refunded_at = CASE WHEN $2 = 'refunded' THEN now() ELSE refunded_at END,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns,
		id, status,
	).Scan(orderDest(o)...); err != nil {
		return nil, fmt.Errorf("SetOrderStatus: %w", err)
	}
	return o, nil
}

// ExpirePendingOrders 將建立時間早於 before 的待付款訂單改為取消
func ExpirePendingOrders(ctx context.Context, db database.Querier, before time.Time) (int64, error) {
	tag, err := db.Exec(ctx,
		`UPDATE orders
		 SET status = 'cancelled', cancelled_at = now(), updated_at = now()
		 WHERE status = 'pending' AND created_at < $1`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("ExpirePendingOrders: %w", err)
	}
	return tag.RowsAffected(), nil
}
