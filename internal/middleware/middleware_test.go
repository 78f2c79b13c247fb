package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func bearer(t *testing.T, u model.User) string {
	t.Helper()
	tok, err := service.IssueAccessToken(u, time.Minute)
	require.NoError(t, err)
	return "Bearer " + tok
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func TestExtractClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	for _, h := range []string{"", "BadHeader", "Basic abc", "Bearer ", "Bearer invalid"} {
		ctx, _ := newContext(h)
		_, err := extractClaims(ctx)
		requireStatus(t, err, http.StatusUnauthorized)
	}

	ctx, _ := newContext(bearer(t, model.User{ID: 1, IsAdmin: true}))
	claims, err := extractClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)
	require.True(t, claims.IsAdmin)

	ctx, _ = newContext("bearer " + bearer(t, model.User{ID: 5})[len("Bearer "):])
	claims, err = extractClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
}

func TestExtractClaimsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	tok, err := service.IssueAccessToken(model.User{ID: 1}, -time.Minute)
	require.NoError(t, err)
	ctx, _ := newContext("Bearer " + tok)
	_, err = extractClaims(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestCurrentClaims(t *testing.T) {
	ctx, _ := newContext("")
	_, ok := CurrentClaims(ctx)
	require.False(t, ok)

	ctx.Set(ContextUserKey, &service.CustomClaims{})
	_, ok = CurrentClaims(ctx)
	require.False(t, ok)

	ctx.Set(ContextUserKey, &service.CustomClaims{UserID: 3})
	cl, ok := CurrentClaims(ctx)
	require.True(t, ok)
	require.Equal(t, 3, cl.UserID)
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	ctx, rec := newContext(bearer(t, model.User{ID: 2}))
	called := false
	handler := RequireAuth(func(c echo.Context) error {
		called = true
		cl, ok := CurrentClaims(c)
		require.True(t, ok)
		require.Equal(t, 2, cl.UserID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, _ = newContext("")
	called = false
	err := RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	require.False(t, called)
}

func TestRoleMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "adminsecret")
	user := bearer(t, model.User{ID: 4})
	admin := bearer(t, model.User{ID: 3, IsAdmin: true})
	super := bearer(t, model.User{ID: 1, IsSuperAdmin: true})

	cases := []struct {
		name string
		mw   echo.MiddlewareFunc
		auth string
		code int
	}{
		{"admin allows admin", RequireAdmin, admin, http.StatusOK},
		{"admin allows super", RequireAdmin, super, http.StatusOK},
		{"admin rejects user", RequireAdmin, user, http.StatusForbidden},
		{"admin rejects anonymous", RequireAdmin, "", http.StatusUnauthorized},
		{"super allows super", RequireSuperAdmin, super, http.StatusOK},
		{"super rejects admin", RequireSuperAdmin, admin, http.StatusForbidden},
		{"super rejects anonymous", RequireSuperAdmin, "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newContext(tc.auth)
			called := false
			err := tc.mw(func(c echo.Context) error { called = true; return c.NoContent(http.StatusOK) })(ctx)
			if tc.code == http.StatusOK {
				require.NoError(t, err)
				require.True(t, called)
				require.Equal(t, http.StatusOK, rec.Code)
				return
			}
			requireStatus(t, err, tc.code)
			require.False(t, called)
		})
	}
}
