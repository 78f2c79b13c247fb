// File: internal/service/checkout.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	getCourseByID            = store.GetCourseByID
	getEnrollment            = store.GetEnrollment
	getOrderByIdempotencyKey = store.GetOrderByIdempotencyKey
	getOrderForUpdate        = store.GetOrderForUpdate
	createOrder              = store.CreateOrder
	setOrderStatus           = store.SetOrderStatus
	activateEnrollment       = store.ActivateEnrollment
	revokeEnrollment         = store.RevokeEnrollment
	expirePendingOrders      = store.ExpirePendingOrders
)

// PlaceOrderInput 為建立訂單的參數；IdempotencyKey 可為空
type PlaceOrderInput struct {
	UserID         int
	CourseID       int
	PaymentMethod  string
	IdempotencyKey string
}

// PlaceOrder 建立課程訂單
// wallet 付款在同一交易內扣款、建立已付款訂單並開通課程；manual 只建立待付款訂單
// 重複的 IdempotencyKey 回傳既有訂單，created 為 false
func PlaceOrder(ctx context.Context, db database.DB, in PlaceOrderInput) (*model.Order, bool, error) {
	if in.IdempotencyKey != "" {
		existing, err := getOrderByIdempotencyKey(ctx, db, in.UserID, in.IdempotencyKey)
		if err == nil {
			return existing, false, nil
		}
		if !store.IsNotFound(err) {
			return nil, false, fmt.Errorf("PlaceOrder: %w", err)
		}
	}

	course, err := getCourseByID(ctx, db, in.CourseID)
	if err != nil {
		return nil, false, fmt.Errorf("PlaceOrder: %w", err)
	}
	if !course.IsPublished {
		return nil, false, fmt.Errorf("PlaceOrder: course %d: %w", course.ID, pgx.ErrNoRows)
	}
	if course.IsFree() {
		return nil, false, ErrCourseNotPurchasable
	}

	enr, err := getEnrollment(ctx, db, in.UserID, course.ID)
	switch {
	case err == nil && enr.GrantsAccess():
		return nil, false, ErrAlreadyEnrolled
	case err != nil && !store.IsNotFound(err):
		return nil, false, fmt.Errorf("PlaceOrder: %w", err)
	}

	order := &model.Order{
		Reference:     NewOrderReference(),
		UserID:        in.UserID,
		CourseID:      course.ID,
		AmountCents:   course.PriceCents,
		PaymentMethod: in.PaymentMethod,
		Status:        model.OrderPending,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		order.IdempotencyKey = &key
	}

	var created *model.Order
	switch in.PaymentMethod {
	case model.PaymentWallet:
		order.Status = model.OrderPaid
		err = pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
			ref := order.Reference
			if _, err := applyWalletChange(ctx, tx, in.UserID, order.AmountCents, model.TxPurchase, "purchase "+course.Title, &ref); err != nil {
				return err
			}
			var err error
			if created, err = createOrder(ctx, tx, order); err != nil {
				return err
			}
			_, err = activateEnrollment(ctx, tx, in.UserID, course.ID)
			return err
		})
	case model.PaymentManual:
		created, err = createOrder(ctx, db, order)
	default:
		return nil, false, fmt.Errorf("PlaceOrder: unknown payment method %q", in.PaymentMethod)
	}

	if err != nil {
		// 同一個 key 併發送出時，後到者取回先建立的訂單
		if in.IdempotencyKey != "" && store.IsUniqueViolation(err) {
			existing, gerr := getOrderByIdempotencyKey(ctx, db, in.UserID, in.IdempotencyKey)
			if gerr == nil {
				return existing, false, nil
			}
		}
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("PlaceOrder: %w", err)
	}
	return created, true, nil
}

// transitionOrder 在交易內轉換狀態並處理副作用
func transitionOrder(ctx context.Context, tx pgx.Tx, o *model.Order, to string) (*model.Order, error) {
	if !model.CanTransition(o.Status, to) {
		return nil, ErrInvalidTransition
	}
	updated, err := setOrderStatus(ctx, tx, o.ID, to)
	if err != nil {
		return nil, err
	}

	switch to {
	case model.OrderPaid:
		if _, err := activateEnrollment(ctx, tx, o.UserID, o.CourseID); err != nil {
			return nil, err
		}
	case model.OrderRefunded:
		if o.AmountCents > 0 {
			ref := o.Reference
			if _, err := applyWalletChange(ctx, tx, o.UserID, o.AmountCents, model.TxRefund, "refund "+o.Reference, &ref); err != nil {
				return nil, err
			}
		}
		if err := revokeEnrollment(ctx, tx, o.UserID, o.CourseID); err != nil && !store.IsNotFound(err) {
			return nil, err
		}
	}
	return updated, nil
}

// UpdateOrderStatus 管理員變更訂單狀態
// pending→paid 開通課程；pending→cancelled；paid→refunded 退款至錢包並撤銷課程
func UpdateOrderStatus(ctx context.Context, db database.DB, orderID int, to string) (*model.Order, error) {
	var updated *model.Order
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		o, err := getOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		updated, err = transitionOrder(ctx, tx, o, to)
		return err
	})
	if errors.Is(err, ErrInvalidTransition) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateOrderStatus: %w", err)
	}
	return updated, nil
}

// CancelOrder 使用者取消自己的待付款訂單；他人的訂單視為不存在
func CancelOrder(ctx context.Context, db database.DB, userID, orderID int) (*model.Order, error) {
	var updated *model.Order
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		o, err := getOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return pgx.ErrNoRows
		}
		updated, err = transitionOrder(ctx, tx, o, model.OrderCancelled)
		return err
	})
	if errors.Is(err, ErrInvalidTransition) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("CancelOrder: %w", err)
	}
	return updated, nil
}

// ExpirePendingOrders 取消建立超過 ttl 的待付款訂單
func ExpirePendingOrders(ctx context.Context, db database.Querier, ttl time.Duration) (int64, error) {
	return expirePendingOrders(ctx, db, timeNow().Add(-ttl))
}
