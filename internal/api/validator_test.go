package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func jsonCtx(body string) echo.Context {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{"email":`, "invalid request body"},
		{"missing", `{"email":"a@b.com"}`, "name is required"},
		{"email", `{"name":"a","email":"nope","password":"12345678"}`, "email must be a valid email"},
		{"short password", `{"name":"a","email":"a@b.com","password":"1"}`, "password must be at least 8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req RegisterRequest
			err := Decode(jsonCtx(tc.body), &req)
			require.EqualError(t, err, tc.want)
		})
	}

	var req RegisterRequest
	require.NoError(t, Decode(jsonCtx(`{"name":"a","email":"a@b.com","password":"12345678"}`), &req))
	require.Equal(t, "a@b.com", req.Email)
}

func TestValidationMessages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&OrderStatusRequest{Status: "shipped"})
	require.Equal(t, "status must be one of [paid cancelled refunded]", validationMessage(err))

	err = v.Validate(&SkillRequest{Name: "Go", Proficiency: 101})
	require.Equal(t, "proficiency must be at most 100", validationMessage(err))

	err = v.Validate(&CourseRequest{Title: "t", ThumbnailURL: "not a url"})
	require.Equal(t, "thumbnail_url must be a valid url", validationMessage(err))

	err = v.Validate(&CompanyRequest{Name: "n", StartedOn: "01/02/2020"})
	require.Equal(t, "started_on is invalid", validationMessage(err))

	err = v.Validate(&AdjustmentRequest{Reason: "r"})
	require.Equal(t, "amount_cents is required", validationMessage(err))

	require.Equal(t, "plain", validationMessage(errors.New("plain")))
}
