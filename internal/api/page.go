// File: internal/api/page.go
package api

import (
	"errors"
	"math"
	"strconv"

	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// maxPage 確保 (page-1)*limit 不會溢位
	maxPage = math.MaxInt / MaxLimit
)

var errInvalidPage = errors.New("invalid pagination parameters")

// Page 解析自 ?page&limit&q；page 從 1 開始
type Page struct {
	Page  int
	Limit int
	Query string
}

// List 分頁列表的 data 內容
// swagger:model api.List
type List struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page" example:"1"`
	Limit int         `json:"limit" example:"20"`
	Total int         `json:"total" example:"42"`
}

// ParsePage limit 超過上限時以 MaxLimit 計
func ParsePage(c echo.Context) (Page, error) {
	p := Page{Page: 1, Limit: DefaultLimit, Query: c.QueryParam("q")}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPage {
			return Page{}, errInvalidPage
		}
		p.Page = n
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Page{}, errInvalidPage
		}
		p.Limit = min(n, MaxLimit)
	}
	return p, nil
}

func (p Page) Params() store.ListParams {
	return store.ListParams{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit, Query: p.Query}
}

// NewList nil slice 轉為空陣列，避免回傳 null
func NewList[T any](items []T, p Page, total int) List {
	if items == nil {
		items = []T{}
	}
	return List{Items: items, Page: p.Page, Limit: p.Limit, Total: total}
}

// ParseID 解析路徑參數中的正整數 ID
func ParseID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// Empty 用於不分頁的列表
func Empty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
