// File: internal/handler/dashboard.go
package handler

import (
	"net/http"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/store"

	"github.com/jinzhu/now"
	"github.com/labstack/echo/v4"
)

var (
	getDashboardStats = store.GetDashboardStats
	timeNow           = time.Now
)

// DashboardHandler 後台統計；今日營收以伺服器時區的零點起算
// @Summary     Admin dashboard
// @Tags        admin-dashboard
// @Produce     json
// @Success     200 {object} api.Response{data=model.DashboardStats}
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/dashboard [get]
func DashboardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		today := now.New(timeNow()).BeginningOfDay()
		stats, err := getDashboardStats(c.Request().Context(), db, today)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", stats)
	}
}
