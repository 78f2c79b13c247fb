// File: internal/handler/settings/settings.go
package settings

import (
	"errors"
	"net/http"

	"portfolio-api/internal/api"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	getSettings  = service.GetSettings
	saveSettings = service.SaveSettings
)

// @Summary     Get site settings
// @Description 讀取快取，未命中時查詢資料庫
// @Tags        settings
// @Produce     json
// @Success     200 {object} api.Response{data=map[string]string}
// @Failure     500 {object} api.ErrorResponse
// @Router      /settings [get]
func GetSettingsHandler(db database.DB, cc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := getSettings(c.Request().Context(), db, cc)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", s)
	}
}

// @Summary     Save site settings
// @Description 全部寫入同一交易，完成後清除快取
// @Tags        admin-settings
// @Accept      json
// @Produce     json
// @Param       body body     api.SettingsRequest true "設定"
// @Success     200  {object} api.Response{data=map[string]string}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/settings [put]
func SaveSettingsHandler(db database.DB, cc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SettingsRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		s, err := saveSettings(c.Request().Context(), db, cc, req.Settings)
		if errors.Is(err, service.ErrInvalidSettingKey) {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "settings saved", s)
	}
}
