// Package portfolio 處理技能、經歷、作品與服務項目
// 公開端點只回傳啟用或已發佈的資料，依 position, id 排序
package portfolio

import (
	"context"
	"net/http"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listSkills                = store.ListSkills
	createSkill               = store.CreateSkill
	updateSkill               = store.UpdateSkill
	deleteSkill               = store.DeleteSkill
	listCompanies             = store.ListCompanies
	createCompany             = store.CreateCompany
	updateCompany             = store.UpdateCompany
	deleteCompany             = store.DeleteCompany
	listProjects              = store.ListProjects
	getPublishedProjectBySlug = store.GetPublishedProjectBySlug
	createProject             = store.CreateProject
	updateProject             = store.UpdateProject
	deleteProject             = store.DeleteProject
	listServices              = store.ListServices
	createService             = store.CreateService
	updateService             = store.UpdateService
	deleteService             = store.DeleteService
)

// list 回傳整份清單，visibleOnly 控制是否包含停用或草稿
func list[T any](c echo.Context, db database.DB, fn func(context.Context, database.Querier, bool) ([]T, error), visibleOnly bool) error {
	items, err := fn(c.Request().Context(), db, visibleOnly)
	if err != nil {
		return api.InternalError(c, err)
	}
	return api.OK(c, http.StatusOK, "ok", api.Empty(items))
}

// remove 依 :id 刪除；kind 用於回應訊息
func remove(c echo.Context, db database.DB, fn func(context.Context, database.Querier, int) error, kind string) error {
	id, err := api.ParseID(c, "id")
	if err != nil {
		return api.Fail(c, http.StatusBadRequest, err.Error())
	}
	err = fn(c.Request().Context(), db, id)
	if store.IsNotFound(err) {
		return api.Fail(c, http.StatusNotFound, kind+" not found")
	}
	if err != nil {
		return api.InternalError(c, err)
	}
	return api.OK(c, http.StatusOK, kind+" deleted", nil)
}
