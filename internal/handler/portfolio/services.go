package portfolio

import (
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

func serviceFromRequest(req api.ServiceRequest) *model.Service {
	return &model.Service{
		Title:          strings.TrimSpace(req.Title),
		Slug:           service.EnsureSlug(req.Slug, req.Title),
		Description:    req.Description,
		Icon:           req.Icon,
		PriceFromCents: req.PriceFromCents,
		Position:       req.Position,
		IsActive:       req.IsActive,
	}
}

// @Summary     List active services
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Service}
// @Failure     500 {object} api.ErrorResponse
// @Router      /services [get]
func ListServicesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listServices, true) }
}

// @Summary     List all services
// @Tags        admin-portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Service}
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/services [get]
func AdminListServicesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listServices, false) }
}

// @Summary     Create a service
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       body body     api.ServiceRequest true "服務項目"
// @Success     201  {object} api.Response{data=model.Service}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/services [post]
func CreateServiceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ServiceRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		s, err := createService(c.Request().Context(), db, serviceFromRequest(req))
		if store.IsUniqueViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "slug already exists")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "service created", s)
	}
}

// @Summary     Update a service
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       id   path     int                true "服務項目 ID"
// @Param       body body     api.ServiceRequest true "服務項目"
// @Success     200  {object} api.Response{data=model.Service}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/services/{id} [put]
func UpdateServiceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.ServiceRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		s := serviceFromRequest(req)
		s.ID = id
		err = updateService(c.Request().Context(), db, s)
		switch {
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, "service not found")
		case store.IsUniqueViolation(err):
			return api.Fail(c, http.StatusBadRequest, "slug already exists")
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "service updated", s)
	}
}

// @Summary     Delete a service
// @Description 相關報價單保留，service_id 設為空值
// @Tags        admin-portfolio
// @Produce     json
// @Param       id  path     int true "服務項目 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/services/{id} [delete]
func DeleteServiceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return remove(c, db, deleteService, "service") }
}
