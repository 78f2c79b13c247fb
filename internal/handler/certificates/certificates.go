// File: internal/handler/certificates/certificates.go
package certificates

import (
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listUserCertificates   = store.ListUserCertificates
	getCertificateByNumber = store.GetCertificateByNumber
	listCertificates       = store.ListCertificates
	revokeCertificate      = store.RevokeCertificate
)

const msgNotFound = "certificate not found"

// @Summary     List my certificates
// @Tags        certificates
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Certificate}
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me/certificates [get]
func MyCertificatesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, "invalid or missing token")
		}
		list, err := listUserCertificates(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.Empty(list))
	}
}

// @Summary     Verify a certificate
// @Description 公開查驗；已撤銷的證書 revoked_at 有值
// @Tags        certificates
// @Produce     json
// @Param       number path     string true "證書編號"
// @Success     200    {object} api.Response{data=model.Certificate}
// @Failure     404    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Router      /certificates/{number} [get]
func VerifyCertificateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
		cert, err := getCertificateByNumber(c.Request().Context(), db, number)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		msg := "valid"
		if cert.RevokedAt != nil {
			msg = "revoked"
		}
		return api.OK(c, http.StatusOK, msg, cert)
	}
}

// @Summary     List certificates
// @Tags        admin-certificates
// @Produce     json
// @Param       page  query    int    false "頁碼"
// @Param       limit query    int    false "每頁筆數"
// @Param       q     query    string false "證書編號、使用者或課程"
// @Success     200   {object} api.Response{data=api.List{items=[]model.Certificate}}
// @Failure     400   {object} api.ErrorResponse
// @Failure     401   {object} api.ErrorResponse
// @Failure     403   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/certificates [get]
func ListCertificatesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		list, total, err := listCertificates(c.Request().Context(), db, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(list, page, total))
	}
}

// @Summary     Revoke a certificate
// @Description 設定 revoked_at，不刪除資料
// @Tags        admin-certificates
// @Produce     json
// @Param       id  path     int true "證書 ID"
// @Success     200 {object} api.Response{data=model.Certificate}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/certificates/{id} [delete]
func RevokeCertificateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		cert, err := revokeCertificate(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "certificate revoked", cert)
	}
}
