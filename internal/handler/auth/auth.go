// File: internal/handler/auth/auth.go
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword        = service.HashPassword
	authenticateUser    = service.AuthenticateUser
	registerUser        = service.RegisterUser
	issueAccessToken    = service.IssueAccessToken
	issueRefreshToken   = service.IssueRefreshToken
	consumeRefreshToken = service.ConsumeRefreshToken
	revokeRefreshToken  = service.RevokeRefreshToken
	getUserByEmail      = store.GetUserByEmail
	getUserByID         = store.GetUserByID
)

// TokenTTL 存取令牌與 refresh token 的有效期間
type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

// @Summary     Register
// @Description 建立一般使用者帳號並同時建立空錢包；email 一律轉小寫
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.Response{data=model.User}
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
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
		})
		if store.IsUniqueViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "email already registered")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "registered", user)
	}
}

// @Summary     Login
// @Description 以 email 與密碼登入，回傳存取令牌與 refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.Response{data=api.TokenResponse}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, cc cache.Cache, ttl TokenTTL) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, strings.ToLower(strings.TrimSpace(req.Email)))
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		}
		if err != nil {
			return api.InternalError(c, err)
		}

		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			return api.Fail(c, http.StatusUnauthorized, err.Error())
		}
		return issuePair(c, cc, *user, ttl, "logged in")
	}
}

// @Summary     Refresh tokens
// @Description 以 refresh token 換發新的令牌組；舊的 refresh token 立即失效
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RefreshRequest true "refresh token"
// @Success     200  {object} api.Response{data=api.TokenResponse}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/refresh [post]
func RefreshHandler(db database.DB, cc cache.Cache, ttl TokenTTL) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RefreshRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		session, err := consumeRefreshToken(ctx, cc, req.RefreshToken)
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return api.Fail(c, http.StatusUnauthorized, err.Error())
		}
		if err != nil {
			return api.InternalError(c, err)
		}

		// 角色或停用狀態可能在 token 簽發後改變，以資料庫為準
		user, err := getUserByID(ctx, db, session.UserID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusUnauthorized, service.ErrInvalidRefreshToken.Error())
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if !user.IsActive {
			return api.Fail(c, http.StatusUnauthorized, service.ErrInactiveUser.Error())
		}
		return issuePair(c, cc, *user, ttl, "token refreshed")
	}
}

// @Summary     Logout
// @Description 撤銷呼叫者自己的 refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RefreshRequest true "refresh token"
// @Success     200  {object} api.Response
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func LogoutHandler(cc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, "invalid or missing token")
		}
		var req api.RefreshRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		if err := revokeRefreshToken(c.Request().Context(), cc, req.RefreshToken, claims.UserID); err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "logged out", nil)
	}
}

func issuePair(c echo.Context, cc cache.Cache, user model.User, ttl TokenTTL, message string) error {
	access, err := issueAccessToken(user, ttl.Access)
	if err != nil {
		return api.InternalError(c, err)
	}
	refresh, err := issueRefreshToken(c.Request().Context(), cc, user, ttl.Refresh)
	if err != nil {
		return api.InternalError(c, err)
	}
	return api.OK(c, http.StatusOK, message, api.TokenResponse{
		AccessToken:  access,
		TokenType:    "Bearer",
		ExpiresIn:    int64(ttl.Access.Seconds()),
		RefreshToken: refresh,
	})
}
