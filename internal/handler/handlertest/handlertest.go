// Package handlertest 提供 handler 測試共用的 echo context 建構工具
package handlertest

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-api/internal/api"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// New 建立帶有驗證器的 context；body 非空時視為 JSON
func New(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Params 依序設定路徑參數，kv 為 name, value 交錯
func Params(c echo.Context, kv ...string) echo.Context {
	var names, values []string
	for i := 0; i+1 < len(kv); i += 2 {
		names = append(names, kv[i])
		values = append(values, kv[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func AsUser(c echo.Context, id int) echo.Context {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: id})
	return c
}

func AsAdmin(c echo.Context, id int) echo.Context {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: id, IsAdmin: true})
	return c
}

func AsSuperAdmin(c echo.Context, id int) echo.Context {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: id, IsSuperAdmin: true})
	return c
}

// Body 解析回應的共用格式
func Body(t *testing.T, rec *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var r api.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r), rec.Body.String())
	return r
}

// Data 把回應的 data 解析進 v
func Data(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var r struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r), rec.Body.String())
	require.True(t, r.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(r.Data, v))
}

// Expect 檢查狀態碼與訊息
func Expect(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	if message != "" {
		require.Equal(t, message, Body(t, rec).Message)
	}
}
