package settings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/handlertest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"

	"github.com/stretchr/testify/require"
)

func restore() {
	getSettings = service.GetSettings
	saveSettings = service.SaveSettings
}

func TestGetSettingsHandler(t *testing.T) {
	t.Cleanup(restore)
	getSettings = func(context.Context, database.Querier, cache.Cache) (model.Settings, error) {
		return model.Settings{"site.title": "Hi"}, nil
	}
	c, rec := handlertest.New(http.MethodGet, "/settings", "")
	require.NoError(t, GetSettingsHandler(nil, nil)(c))
	require.JSONEq(t, `{"success":true,"message":"ok","data":{"site.title":"Hi"}}`, rec.Body.String())

	getSettings = func(context.Context, database.Querier, cache.Cache) (model.Settings, error) {
		return nil, errors.New("db")
	}
	c, rec = handlertest.New(http.MethodGet, "/settings", "")
	require.NoError(t, GetSettingsHandler(nil, nil)(c))
	handlertest.Expect(t, rec, http.StatusInternalServerError, "internal server error")
}

func TestSaveSettingsHandler(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		code int
		msg  string
	}{
		{"ok", `{"settings":{"site.title":"New"}}`, nil, http.StatusOK, "settings saved"},
		{"bad key", `{"settings":{"Bad Key":"x"}}`, fmt.Errorf("%w: %q", service.ErrInvalidSettingKey, "Bad Key"), http.StatusBadRequest, `invalid setting key: "Bad Key"`},
		{"empty", `{"settings":{}}`, nil, http.StatusBadRequest, "settings must be at least 1"},
		{"missing", `{}`, nil, http.StatusBadRequest, "settings is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			saveSettings = func(_ context.Context, _ database.DB, _ cache.Cache, values map[string]string) (model.Settings, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return model.Settings(values), nil
			}
			c, rec := handlertest.New(http.MethodPut, "/", tc.body)
			require.NoError(t, SaveSettingsHandler(nil, nil)(c))
			handlertest.Expect(t, rec, tc.code, tc.msg)
		})
	}
}
