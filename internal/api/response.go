// File: internal/api/response.go
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response 所有 API 共用的回應格式
// swagger:model api.Response
type Response struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"ok"`
	Data    interface{} `json:"data"`
}

// ErrorResponse 失敗時的回應；data 固定為 null
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Message string      `json:"message" example:"not found"`
	Data    interface{} `json:"data" swaggertype:"object"`
}

const internalErrorMessage = "internal server error"

func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

// InternalError 記錄錯誤細節，對外只回傳通用訊息
func InternalError(c echo.Context, err error) error {
	req := c.Request()
	slog.ErrorContext(req.Context(), "request failed",
		"method", req.Method,
		"path", c.Path(),
		"error", err,
	)
	return Fail(c, http.StatusInternalServerError, internalErrorMessage)
}

// HTTPErrorHandler 取代 echo 預設的錯誤處理，讓 401/403/404/405 也使用相同格式
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = InternalError(c, err)
		return
	}
	if he.Code >= http.StatusInternalServerError {
		_ = InternalError(c, err)
		return
	}

	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	} else if he.Message != nil {
		message = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = Fail(c, he.Code, message)
}
