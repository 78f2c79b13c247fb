// File: internal/handler/orders/orders.go
package orders

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	placeOrder        = service.PlaceOrder
	cancelOrder       = service.CancelOrder
	updateOrderStatus = service.UpdateOrderStatus
	getOrder          = store.GetOrder
	listOrders        = store.ListOrders
	dispatch          = notify.Dispatch
)

const (
	msgUnauthorized  = "invalid or missing token"
	msgOrderNotFound = "order not found"

	// HeaderIdempotencyKey 重送時帶相同的值會取回同一筆訂單
	HeaderIdempotencyKey = "Idempotency-Key"
	maxIdempotencyKeyLen = 100
)

// notifyOrder 只有已付款與已退款的訂單需要通知
func notifyOrder(pool worker.Pool, n notify.Notifier, o *model.Order) {
	switch o.Status {
	case model.OrderPaid:
		dispatch(pool, n, notify.NewEvent(notify.EventOrderPaid, o))
	case model.OrderRefunded:
		dispatch(pool, n, notify.NewEvent(notify.EventOrderRefunded, o))
	}
}

func validOrderStatus(s string) bool {
	switch s {
	case model.OrderPending, model.OrderPaid, model.OrderCancelled, model.OrderRefunded:
		return true
	}
	return false
}

// @Summary     Place an order
// @Description wallet 付款立即扣款並開通課程；manual 建立待付款訂單。可帶 Idempotency-Key 防止重複下單
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "冪等鍵"
// @Param       body            body     api.CreateOrderRequest true  "訂單"
// @Success     200             {object} api.Response{data=model.Order}
// @Success     201             {object} api.Response{data=model.Order}
// @Failure     400             {object} api.ErrorResponse
// @Failure     401             {object} api.ErrorResponse
// @Failure     404             {object} api.ErrorResponse
// @Failure     500             {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders [post]
func CreateOrderHandler(db database.DB, pool worker.Pool, n notify.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		var req api.CreateOrderRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
		if len(key) > maxIdempotencyKeyLen {
			return api.Fail(c, http.StatusBadRequest, "idempotency key too long")
		}

		order, created, err := placeOrder(c.Request().Context(), db, service.PlaceOrderInput{
			UserID:         claims.UserID,
			CourseID:       req.CourseID,
			PaymentMethod:  req.PaymentMethod,
			IdempotencyKey: key,
		})
		switch {
		case errors.Is(err, service.ErrCourseNotPurchasable),
			errors.Is(err, service.ErrAlreadyEnrolled),
			errors.Is(err, service.ErrInsufficientBalance):
			return api.Fail(c, http.StatusBadRequest, err.Error())
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, "course not found")
		case err != nil:
			return api.InternalError(c, err)
		}
		if !created {
			return api.OK(c, http.StatusOK, "order already exists", order)
		}
		notifyOrder(pool, n, order)
		return api.OK(c, http.StatusCreated, "order created", order)
	}
}

// @Summary     List my orders
// @Tags        orders
// @Produce     json
// @Param       page  query    int false "頁碼"
// @Param       limit query    int false "每頁筆數"
// @Success     200   {object} api.Response{data=api.List{items=[]model.Order}}
// @Failure     400   {object} api.ErrorResponse
// @Failure     401   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders [get]
func ListMyOrdersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		list, total, err := listOrders(c.Request().Context(), db, claims.UserID, "", page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(list, page, total))
	}
}

// @Summary     Get an order
// @Description 使用者只能查看自己的訂單；管理員可查看全部
// @Tags        orders
// @Produce     json
// @Param       id  path     int true "訂單 ID"
// @Success     200 {object} api.Response{data=model.Order}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders/{id} [get]
func GetOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		order, err := getOrder(c.Request().Context(), db, id)
		if store.IsNotFound(err) || (err == nil && order.UserID != claims.UserID && !claims.HasAdminAccess()) {
			return api.Fail(c, http.StatusNotFound, msgOrderNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", order)
	}
}

// @Summary     Cancel my pending order
// @Tags        orders
// @Produce     json
// @Param       id  path     int true "訂單 ID"
// @Success     200 {object} api.Response{data=model.Order}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders/{id}/cancel [post]
func CancelOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		order, err := cancelOrder(c.Request().Context(), db, claims.UserID, id)
		switch {
		case errors.Is(err, service.ErrInvalidTransition):
			return api.Fail(c, http.StatusBadRequest, "only pending orders can be cancelled")
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, msgOrderNotFound)
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "order cancelled", order)
	}
}

// @Summary     List all orders
// @Tags        admin-orders
// @Produce     json
// @Param       status query    string false "訂單狀態" Enums(pending, paid, cancelled, refunded)
// @Param       page   query    int    false "頁碼"
// @Param       limit  query    int    false "每頁筆數"
// @Success     200    {object} api.Response{data=api.List{items=[]model.Order}}
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/orders [get]
func AdminListOrdersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		status := c.QueryParam("status")
		if status != "" && !validOrderStatus(status) {
			return api.Fail(c, http.StatusBadRequest, "invalid order status")
		}
		list, total, err := listOrders(c.Request().Context(), db, 0, status, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(list, page, total))
	}
}

// @Summary     Update order status
// @Description pending→paid、pending→cancelled、paid→refunded；其他轉換回傳 400
// @Tags        admin-orders
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "訂單 ID"
// @Param       body body     api.OrderStatusRequest true "新狀態"
// @Success     200  {object} api.Response{data=model.Order}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/orders/{id}/status [patch]
func UpdateOrderStatusHandler(db database.DB, pool worker.Pool, n notify.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.OrderStatusRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		order, err := updateOrderStatus(c.Request().Context(), db, id, req.Status)
		switch {
		case errors.Is(err, service.ErrInvalidTransition):
			return api.Fail(c, http.StatusBadRequest, err.Error())
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, msgOrderNotFound)
		case err != nil:
			return api.InternalError(c, err)
		}
		notifyOrder(pool, n, order)
		return api.OK(c, http.StatusOK, "order updated", order)
	}
}
