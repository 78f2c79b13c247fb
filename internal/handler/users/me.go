// File: internal/handler/users/me.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	registerUser       = service.RegisterUser
	getUserByID        = store.GetUserByID
	listUsers          = store.ListUsers
	updateUser         = store.UpdateUser
	updateUserRoles    = store.UpdateUserRoles
	updateUserPassword = store.UpdateUserPassword
	deleteUser         = store.DeleteUser
)

const msgUnauthorized = "invalid or missing token"

// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Response{data=model.User}
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", user)
	}
}

// @Summary     Update current user info
// @Description 更新當前使用者姓名與 Email
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateMeRequest true "個人資料"
// @Success     200  {object} api.Response{data=model.User}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [put]
func UpdateMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		var req api.UpdateMeRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, claims.UserID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}

		user.Name = strings.TrimSpace(req.Name)
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
		err = updateUser(ctx, db, user)
		if store.IsUniqueViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "email already in use")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "profile updated", user)
	}
}

// @Summary     Update own password
// @Description 驗證舊密碼並更新為新密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateMyPasswordRequest true "新舊密碼"
// @Success     200  {object} api.Response
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me/password [patch]
func UpdateMyPasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		var req api.UpdateMyPasswordRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, claims.UserID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if err := authenticateUser(ctx, *user, req.OldPassword); err != nil {
			return api.Fail(c, http.StatusUnauthorized, "invalid current password")
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			if errors.Is(err, service.ErrPasswordTooLong) {
				return api.Fail(c, http.StatusBadRequest, err.Error())
			}
			return api.InternalError(c, err)
		}
		if err := updateUserPassword(ctx, db, claims.UserID, hash); err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "password updated", nil)
	}
}

// @Summary     Delete current user
// @Description 刪除當前使用者帳號與其錢包、報名紀錄
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [delete]
func DeleteMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		err := deleteUser(c.Request().Context(), db, claims.UserID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "account deleted", nil)
	}
}
