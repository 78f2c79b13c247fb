// File: internal/handler/users/admin.go
package users

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

// @Summary     List users
// @Description 依姓名或 email 搜尋使用者
// @Tags        admin-users
// @Produce     json
// @Param       page  query    int    false "頁碼"
// @Param       limit query    int    false "每頁筆數 (最多 100)"
// @Param       q     query    string false "關鍵字"
// @Success     200   {object} api.Response{data=api.List{items=[]model.User}}
// @Failure     400   {object} api.ErrorResponse
// @Failure     401   {object} api.ErrorResponse
// @Failure     403   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		users, total, err := listUsers(c.Request().Context(), db, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(users, page, total))
	}
}

// @Summary     Create a user
// @Description 管理員建立帳號；只有超級管理員可以建立管理員
// @Tags        admin-users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.Response{data=model.User}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		var req api.CreateUserRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		if req.IsAdmin && !claims.IsSuperAdmin {
			return api.Fail(c, http.StatusForbidden, "only super admins can create admins")
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			if errors.Is(err, service.ErrPasswordTooLong) {
				return api.Fail(c, http.StatusBadRequest, err.Error())
			}
			return api.InternalError(c, err)
		}
		user, err := registerUser(c.Request().Context(), db, &model.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: hash,
			IsAdmin:      req.IsAdmin,
		})
		if store.IsUniqueViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "email already registered")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "user created", user)
	}
}

// @Summary     Get a user by ID
// @Tags        admin-users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.Response{data=model.User}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", user)
	}
}

// @Summary     Update a user
// @Description 更新姓名、Email 與啟用狀態
// @Tags        admin-users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "使用者資料"
// @Success     200  {object} api.Response{data=model.User}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.UpdateUserRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if !canManage(claims, user) {
			return api.Fail(c, http.StatusForbidden, msgSuperAdminTarget)
		}

		user.Name = strings.TrimSpace(req.Name)
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
		user.IsActive = *req.IsActive
		err = updateUser(ctx, db, user)
		switch {
		case store.IsUniqueViolation(err):
			return api.Fail(c, http.StatusBadRequest, "email already in use")
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, "user not found")
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "user updated", user)
	}
}

// @Summary     Delete a user
// @Tags        admin-users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if !canManage(claims, user) {
			return api.Fail(c, http.StatusForbidden, msgSuperAdminTarget)
		}

		err = deleteUser(ctx, db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "user deleted", nil)
	}
}

// @Summary     Update user roles
// @Description 超級管理員設定管理員與超級管理員身分；不能移除自己的超級管理員身分
// @Tags        admin-users
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "使用者 ID"
// @Param       body body     api.UpdateRolesRequest true "角色"
// @Success     200  {object} api.Response{data=model.User}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id}/roles [patch]
func UpdateUserRolesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.UpdateRolesRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		if id == claims.UserID && !*req.IsSuperAdmin {
			return api.Fail(c, http.StatusBadRequest, "cannot remove your own super admin role")
		}

		ctx := c.Request().Context()
		err = updateUserRoles(ctx, db, id, *req.IsAdmin, *req.IsSuperAdmin)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		user, err := getUserByID(ctx, db, id)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "roles updated", user)
	}
}

const msgSuperAdminTarget = "super admin privileges required"

// canManage 只有超級管理員能異動其他超級管理員
func canManage(claims *service.CustomClaims, target *model.User) bool {
	return !target.IsSuperAdmin || claims.IsSuperAdmin
}
