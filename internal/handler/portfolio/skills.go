package portfolio

import (
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

func skillFromRequest(req api.SkillRequest) *model.Skill {
	return &model.Skill{
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Icon:        req.Icon,
		Position:    req.Position,
		IsActive:    req.IsActive,
	}
}

// @Summary     List active skills
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Skill}
// @Failure     500 {object} api.ErrorResponse
// @Router      /skills [get]
func ListSkillsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listSkills, true) }
}

// @Summary     List all skills
// @Tags        admin-portfolio
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Skill}
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/skills [get]
func AdminListSkillsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return list(c, db, listSkills, false) }
}

// @Summary     Create a skill
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       body body     api.SkillRequest true "技能"
// @Success     201  {object} api.Response{data=model.Skill}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/skills [post]
func CreateSkillHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SkillRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		skill, err := createSkill(c.Request().Context(), db, skillFromRequest(req))
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "skill created", skill)
	}
}

// @Summary     Update a skill
// @Tags        admin-portfolio
// @Accept      json
// @Produce     json
// @Param       id   path     int              true "技能 ID"
// @Param       body body     api.SkillRequest true "技能"
// @Success     200  {object} api.Response{data=model.Skill}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/skills/{id} [put]
func UpdateSkillHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.SkillRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		skill := skillFromRequest(req)
		skill.ID = id
		err = updateSkill(c.Request().Context(), db, skill)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, "skill not found")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "skill updated", skill)
	}
}

// @Summary     Delete a skill
// @Tags        admin-portfolio
// @Produce     json
// @Param       id  path     int true "技能 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/skills/{id} [delete]
func DeleteSkillHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error { return remove(c, db, deleteSkill, "skill") }
}
