// File: internal/handler/wallet/wallet.go
package wallet

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	ensureWallet           = store.EnsureWallet
	getWallet              = store.GetWallet
	listWalletTransactions = store.ListWalletTransactions
	deposit                = service.Deposit
	adjustWallet           = service.AdjustWallet
)

const msgUnauthorized = "invalid or missing token"

// @Summary     Get my wallet
// @Description 第一次查詢時建立餘額為 0 的錢包
// @Tags        wallet
// @Produce     json
// @Success     200 {object} api.Response{data=model.Wallet}
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /wallet [get]
func GetWalletHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		ctx := c.Request().Context()
		if err := ensureWallet(ctx, db, claims.UserID); err != nil {
			return api.InternalError(c, err)
		}
		w, err := getWallet(ctx, db, claims.UserID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", w)
	}
}

// @Summary     List my wallet transactions
// @Tags        wallet
// @Produce     json
// @Param       page  query    int    false "頁碼"
// @Param       limit query    int    false "每頁筆數"
// @Param       type  query    string false "交易類型" Enums(deposit, purchase, refund, admin_credit, admin_debit)
// @Success     200   {object} api.Response{data=api.List{items=[]model.WalletTransaction}}
// @Failure     400   {object} api.ErrorResponse
// @Failure     401   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /wallet/transactions [get]
func ListTransactionsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		txType := c.QueryParam("type")
		if txType != "" && !model.ValidTxType(txType) {
			return api.Fail(c, http.StatusBadRequest, "invalid transaction type")
		}
		list, total, err := listWalletTransactions(c.Request().Context(), db, claims.UserID, txType, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(list, page, total))
	}
}

// @Summary     Deposit into my wallet
// @Description 同一個 payment_reference 只能入帳一次
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Param       body body     api.DepositRequest true "儲值資料"
// @Success     201  {object} api.Response{data=model.WalletTransaction}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /wallet/deposits [post]
func DepositHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		var req api.DepositRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		tx, err := deposit(c.Request().Context(), db, claims.UserID, req.AmountCents,
			strings.TrimSpace(req.PaymentGateway), strings.TrimSpace(req.PaymentReference))
		if errors.Is(err, service.ErrDuplicateReference) || errors.Is(err, service.ErrInvalidAmount) {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "deposit completed", tx)
	}
}

// @Summary     Adjust a user's wallet
// @Description 正數為加值，負數為扣款；扣款後餘額不可小於 0
// @Tags        admin-wallets
// @Accept      json
// @Produce     json
// @Param       user_id path     int                   true "使用者 ID"
// @Param       body    body     api.AdjustmentRequest true "調整內容"
// @Success     201     {object} api.Response{data=model.WalletTransaction}
// @Failure     400     {object} api.ErrorResponse
// @Failure     401     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/wallets/{user_id}/adjustments [post]
func AdjustmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := api.ParseID(c, "user_id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.AdjustmentRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		tx, err := adjustWallet(c.Request().Context(), db, userID, req.AmountCents, strings.TrimSpace(req.Reason))
		switch {
		case errors.Is(err, service.ErrInsufficientBalance), errors.Is(err, service.ErrInvalidAmount):
			return api.Fail(c, http.StatusBadRequest, err.Error())
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, "user not found")
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "wallet adjusted", tx)
	}
}
