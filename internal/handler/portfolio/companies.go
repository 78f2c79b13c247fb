package portfolio

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

var errDateOrder = errors.New("started_on must not be after ended_on")

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// companyFromRequest 格式已由 validator 檢查，這裡只確認起訖順序
func companyFromRequest(req api.CompanyRequest) (*model.Company, error) {
	started, err := parseDate(req.StartedOn)
	if err != nil {
		return nil, err
	}
	ended, err := parseDate(req.EndedOn)
	if err != nil {
		return nil, err
	}
	if started != nil && ended != nil && started.After(*ended) {
		return nil, errDateOrder
	}
	return &model.Company{
		Name:        strings.TrimSpace(req.Name),
		Role:        req.Role,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		Description: req.Description,
		StartedOn:   started,
		EndedOn:     ended,
		Position:    req.Position,
		IsActive:    req.IsActive,
	}, nil
}

// @Summary     List active companies
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Company}
// @Failure     500 {object} api.ErrorResponse
// @Router      /companies [get]
func ListCompaniesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listCompanies, true) }
}

// @Summary     List all companies
// @Tags        admin-portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Company}
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/companies [get]
func AdminListCompaniesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listCompanies, false) }
}

// @Summary     Create a company
// @Description 日期格式為 YYYY-MM-DD；started_on 不可晚於 ended_on
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       body body     api.CompanyRequest true "經歷"
// @Success     201  {object} api.Response{data=model.Company}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/companies [post]
func CreateCompanyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CompanyRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		company, err := companyFromRequest(req)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		company, err = createCompany(c.Request().Context(), db, company)
		if store.IsCheckViolation(err) {
			return api.Fail(c, http.StatusBadRequest, errDateOrder.Error())
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "company created", company)
	}
}

// @Summary     Update a company
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       id   path     int                true "經歷 ID"
// @Param       body body     api.CompanyRequest true "經歷"
// @Success     200  {object} api.Response{data=model.Company}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/companies/{id} [put]
func UpdateCompanyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.CompanyRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		company, err := companyFromRequest(req)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		company.ID = id
		err = updateCompany(c.Request().Context(), db, company)
		switch {
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, "company not found")
		case store.IsCheckViolation(err):
			return api.Fail(c, http.StatusBadRequest, errDateOrder.Error())
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "company updated", company)
	}
}

// @Summary     Delete a company
// @Description 關聯作品保留，company_id 設為空值
// @Tags        admin-portfolio
// @Produce     json
// @Param       id  path     int true "經歷 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/companies/{id} [delete]
func DeleteCompanyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return remove(c, db, deleteCompany, "company") }
}
