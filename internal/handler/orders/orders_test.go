package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/handlertest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type recorder struct{ events []notify.Event }

func (r *recorder) Notify(_ context.Context, ev notify.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func restore() {
	placeOrder = service.PlaceOrder
	cancelOrder = service.CancelOrder
	updateOrderStatus = service.UpdateOrderStatus
	getOrder = store.GetOrder
	listOrders = store.ListOrders
	dispatch = notify.Dispatch
}

func TestCreateOrderHandler(t *testing.T) {
	const body = `{"course_id":3,"payment_method":"wallet"}`

	cases := []struct {
		name    string
		body    string
		order   *model.Order
		created bool
		err     error
		code    int
		events  int
	}{
		{"wallet paid", body, &model.Order{ID: 1, Status: model.OrderPaid}, true, nil, http.StatusCreated, 1},
		{"manual pending", `{"course_id":3,"payment_method":"manual"}`, &model.Order{ID: 2, Status: model.OrderPending}, true, nil, http.StatusCreated, 0},
		{"repeated key", body, &model.Order{ID: 1, Status: model.OrderPaid}, false, nil, http.StatusOK, 0},
		{"insufficient", body, nil, false, service.ErrInsufficientBalance, http.StatusBadRequest, 0},
		{"free course", body, nil, false, service.ErrCourseNotPurchasable, http.StatusBadRequest, 0},
		{"enrolled", body, nil, false, service.ErrAlreadyEnrolled, http.StatusBadRequest, 0},
		{"missing course", body, nil, false, fmt.Errorf("PlaceOrder: %w", pgx.ErrNoRows), http.StatusNotFound, 0},
		{"db", body, nil, false, errors.New("db"), http.StatusInternalServerError, 0},
		{"bad method", `{"course_id":3,"payment_method":"card"}`, nil, false, nil, http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			placeOrder = func(_ context.Context, _ database.DB, in service.PlaceOrderInput) (*model.Order, bool, error) {
				require.Equal(t, 6, in.UserID)
				require.Equal(t, 3, in.CourseID)
				require.Equal(t, "key-1", in.IdempotencyKey)
				return tc.order, tc.created, tc.err
			}
			pool := &worker.FakePool{}
			rec := &recorder{}
			c, res := handlertest.New(http.MethodPost, "/orders", tc.body)
			c.Request().Header.Set(HeaderIdempotencyKey, " key-1 ")
			require.NoError(t, CreateOrderHandler(nil, pool, rec)(handlertest.AsUser(c, 6)))
			handlertest.Expect(t, res, tc.code, "")
			require.Len(t, rec.events, tc.events)
			require.Equal(t, tc.events, pool.Submitted)
		})
	}

	t.Run("unauthorized", func(t *testing.T) {
		c, res := handlertest.New(http.MethodPost, "/orders", body)
		require.NoError(t, CreateOrderHandler(nil, &worker.FakePool{}, notify.NopNotifier{})(c))
		handlertest.Expect(t, res, http.StatusUnauthorized, msgUnauthorized)
	})
}

func TestGetOrderHandler(t *testing.T) {
	t.Cleanup(restore)
	getOrder = func(_ context.Context, _ database.Querier, id int) (*model.Order, error) {
		if id != 1 {
			return nil, pgx.ErrNoRows
		}
		return &model.Order{ID: 1, UserID: 5}, nil
	}

	cases := []struct {
		name  string
		id    string
		user  int
		admin bool
		code  int
	}{
		{"owner", "1", 5, false, http.StatusOK},
		{"other user", "1", 6, false, http.StatusNotFound},
		{"admin", "1", 6, true, http.StatusOK},
		{"missing", "2", 5, false, http.StatusNotFound},
		{"bad id", "-1", 5, false, http.StatusBadRequest},
	}
	for _, tc := range cases {
		c, res := handlertest.New(http.MethodGet, "/", "")
		if tc.admin {
			handlertest.AsAdmin(c, tc.user)
		} else {
			handlertest.AsUser(c, tc.user)
		}
		require.NoError(t, GetOrderHandler(nil)(handlertest.Params(c, "id", tc.id)), tc.name)
		handlertest.Expect(t, res, tc.code, "")
	}
}

func TestListOrdersHandlers(t *testing.T) {
	t.Cleanup(restore)
	var gotUser int
	var gotStatus string
	listOrders = func(_ context.Context, _ database.Querier, userID int, status string, _ store.ListParams) ([]model.Order, int, error) {
		gotUser, gotStatus = userID, status
		return nil, 0, nil
	}

	c, res := handlertest.New(http.MethodGet, "/orders?status=paid", "")
	require.NoError(t, ListMyOrdersHandler(nil)(handlertest.AsUser(c, 9)))
	handlertest.Expect(t, res, http.StatusOK, "ok")
	require.Equal(t, 9, gotUser)
	require.Empty(t, gotStatus)

	c, res = handlertest.New(http.MethodGet, "/admin/orders?status=paid", "")
	require.NoError(t, AdminListOrdersHandler(nil)(c))
	handlertest.Expect(t, res, http.StatusOK, "ok")
	require.Zero(t, gotUser)
	require.Equal(t, model.OrderPaid, gotStatus)

	c, res = handlertest.New(http.MethodGet, "/admin/orders?status=lost", "")
	require.NoError(t, AdminListOrdersHandler(nil)(c))
	handlertest.Expect(t, res, http.StatusBadRequest, "invalid order status")
}

func TestCancelOrderHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"ok", nil, http.StatusOK},
		{"not pending", service.ErrInvalidTransition, http.StatusBadRequest},
		{"not mine", fmt.Errorf("CancelOrder: %w", pgx.ErrNoRows), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			cancelOrder = func(_ context.Context, _ database.DB, userID, orderID int) (*model.Order, error) {
				require.Equal(t, 2, userID)
				require.Equal(t, 10, orderID)
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.Order{ID: 10, Status: model.OrderCancelled}, nil
			}
			c, res := handlertest.New(http.MethodPost, "/", "")
			require.NoError(t, CancelOrderHandler(nil)(handlertest.Params(handlertest.AsUser(c, 2), "id", "10")))
			handlertest.Expect(t, res, tc.code, "")
		})
	}
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	cases := []struct {
		name   string
		status string
		err    error
		code   int
		event  string
	}{
		{"paid", model.OrderPaid, nil, http.StatusOK, notify.EventOrderPaid},
		{"refunded", model.OrderRefunded, nil, http.StatusOK, notify.EventOrderRefunded},
		{"cancelled", model.OrderCancelled, nil, http.StatusOK, ""},
		{"invalid transition", model.OrderRefunded, service.ErrInvalidTransition, http.StatusBadRequest, ""},
		{"missing", model.OrderPaid, fmt.Errorf("UpdateOrderStatus: %w", pgx.ErrNoRows), http.StatusNotFound, ""},
		{"unknown status", "pending", nil, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			updateOrderStatus = func(_ context.Context, _ database.DB, id int, to string) (*model.Order, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.Order{ID: id, Status: to}, nil
			}
			rec := &recorder{}
			c, res := handlertest.New(http.MethodPatch, "/", `{"status":"`+tc.status+`"}`)
			require.NoError(t, UpdateOrderStatusHandler(nil, &worker.FakePool{}, rec)(handlertest.Params(c, "id", "4")))
			handlertest.Expect(t, res, tc.code, "")
			if tc.event == "" {
				require.Empty(t, rec.events)
				return
			}
			require.Len(t, rec.events, 1)
			require.Equal(t, tc.event, rec.events[0].Type)
		})
	}
}
