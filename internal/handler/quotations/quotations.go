// File: internal/handler/quotations/quotations.go
package quotations

import (
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	createQuotation       = store.CreateQuotation
	listQuotations        = store.ListQuotations
	getQuotation          = store.GetQuotation
	updateQuotationStatus = store.UpdateQuotationStatus
	deleteQuotation       = store.DeleteQuotation
	dispatch              = notify.Dispatch
)

const msgNotFound = "quotation not found"

func validStatus(s string) bool {
	switch s {
	case model.QuotationNew, model.QuotationContacted, model.QuotationAccepted, model.QuotationRejected:
		return true
	}
	return false
}

// @Summary     Request a quotation
// @Description 公開表單；建立後以 webhook 通知
// @Tags        quotations
// @Accept      json
// @Produce     json
// @Param       body body     api.QuotationRequest true "報價需求"
// @Success     201  {object} api.Response{data=model.Quotation}
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /quotations [post]
func CreateQuotationHandler(db database.DB, pool worker.Pool, n notify.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.QuotationRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		q, err := createQuotation(c.Request().Context(), db, &model.Quotation{
			ServiceID: req.ServiceID,
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Budget:    req.Budget,
			Message:   req.Message,
		})
		if store.IsForeignKeyViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "unknown service")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		dispatch(pool, n, notify.NewEvent(notify.EventQuotationCreated, q))
		return api.OK(c, http.StatusCreated, "quotation received", q)
	}
}

// @Summary     List quotations
// @Tags        admin-quotations
// @Produce     json
// @Param       status query    string false "狀態" Enums(new, contacted, accepted, rejected)
// @Param       page   query    int    false "頁碼"
// @Param       limit  query    int    false "每頁筆數"
// @Param       q      query    string false "姓名或 email"
// @Success     200    {object} api.Response{data=api.List{items=[]model.Quotation}}
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/quotations [get]
func ListQuotationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		status := c.QueryParam("status")
		if status != "" && !validStatus(status) {
			return api.Fail(c, http.StatusBadRequest, "invalid quotation status")
		}
		list, total, err := listQuotations(c.Request().Context(), db, status, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(list, page, total))
	}
}

// @Summary     Get a quotation
// @Tags        admin-quotations
// @Produce     json
// @Param       id  path     int true "報價單 ID"
// @Success     200 {object} api.Response{data=model.Quotation}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/quotations/{id} [get]
func GetQuotationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		q, err := getQuotation(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", q)
	}
}

// @Summary     Update quotation status
// @Tags        admin-quotations
// @Accept      json
// @Produce     json
// @Param       id   path     int                        true "報價單 ID"
// @Param       body body     api.QuotationStatusRequest true "狀態"
// @Success     200  {object} api.Response{data=model.Quotation}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/quotations/{id}/status [patch]
func UpdateQuotationStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.QuotationStatusRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		ctx := c.Request().Context()
		err = updateQuotationStatus(ctx, db, id, req.Status)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		q, err := getQuotation(ctx, db, id)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "quotation updated", q)
	}
}

// @Summary     Delete a quotation
// @Tags        admin-quotations
// @Produce     json
// @Param       id  path     int true "報價單 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/quotations/{id} [delete]
func DeleteQuotationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		err = deleteQuotation(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "quotation deleted", nil)
	}
}
