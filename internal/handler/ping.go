// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"

	"github.com/labstack/echo/v4"
)

const (
	healthProbeKey = "health:probe"
	healthProbeTTL = 10 * time.Second
)

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Response{data=string}
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return api.Fail(c, http.StatusInternalServerError, "database unhealthy")
		}
		if err := cc.Set(ctx, healthProbeKey, "ok", healthProbeTTL).Err(); err != nil {
			return api.Fail(c, http.StatusInternalServerError, "cache unhealthy")
		}
		return api.OK(c, http.StatusOK, "pong", "pong")
	}
}
