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

const msgProjectNotFound = "project not found"

func projectFromRequest(req api.ProjectRequest) *model.Project {
	stack := req.TechStack
	if stack == nil {
		stack = []string{}
	}
	return &model.Project{
		CompanyID:   req.CompanyID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        service.EnsureSlug(req.Slug, req.Title),
		Summary:     req.Summary,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ProjectURL:  req.ProjectURL,
		RepoURL:     req.RepoURL,
		TechStack:   stack,
		IsFeatured:  req.IsFeatured,
		IsPublished: req.IsPublished,
		Position:    req.Position,
	}
}

func projectWriteError(c echo.Context, err error) error {
	switch {
	case store.IsNotFound(err):
		return api.Fail(c, http.StatusNotFound, msgProjectNotFound)
	case store.IsUniqueViolation(err):
		return api.Fail(c, http.StatusBadRequest, "slug already exists")
	case store.IsForeignKeyViolation(err):
		return api.Fail(c, http.StatusBadRequest, "unknown company")
	}
	return api.InternalError(c, err)
}

// @Summary     List published projects
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Project}
// @Failure     500 {object} api.ErrorResponse
// @Router      /projects [get]
func ListProjectsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listProjects, true) }
}

// @Summary     Get a published project
// @Tags        portfolio
// @Produce     json
// @Param       slug path     string true "作品 slug"
// @Success     200  {object} api.Response{data=model.Project}
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /projects/{slug} [get]
func GetProjectHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := getPublishedProjectBySlug(c.Request().Context(), db, c.Param("slug"))
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgProjectNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", p)
	}
}

// @Summary     List all projects
// @Tags        admin-portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Project}
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/projects [get]
func AdminListProjectsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listProjects, false) }
}

// @Summary     Create a project
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       body body     api.ProjectRequest true "作品"
// @Success     201  {object} api.Response{data=model.Project}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/projects [post]
func CreateProjectHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ProjectRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		p, err := createProject(c.Request().Context(), db, projectFromRequest(req))
		if err != nil {
			return projectWriteError(c, err)
		}
		return api.OK(c, http.StatusCreated, "project created", p)
	}
}

// @Summary     Update a project
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       id   path     int                true "作品 ID"
// @Param       body body     api.ProjectRequest true "作品"
// @Success     200  {object} api.Response{data=model.Project}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/projects/{id} [put]
func UpdateProjectHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.ProjectRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		p := projectFromRequest(req)
		p.ID = id
		if err := updateProject(c.Request().Context(), db, p); err != nil {
			return projectWriteError(c, err)
		}
		return api.OK(c, http.StatusOK, "project updated", p)
	}
}

// @Summary     Delete a project
// @Tags        admin-portfolio
// @Produce     json
// @Param       id  path     int true "作品 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/projects/{id} [delete]
func DeleteProjectHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return remove(c, db, deleteProject, "project") }
}
