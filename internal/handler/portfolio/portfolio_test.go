package portfolio

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/handlertest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	listSkills = store.ListSkills
	createSkill = store.CreateSkill
	updateSkill = store.UpdateSkill
	deleteSkill = store.DeleteSkill
	listCompanies = store.ListCompanies
	createCompany = store.CreateCompany
	updateCompany = store.UpdateCompany
	deleteCompany = store.DeleteCompany
	listProjects = store.ListProjects
	getPublishedProjectBySlug = store.GetPublishedProjectBySlug
	createProject = store.CreateProject
	updateProject = store.UpdateProject
	deleteProject = store.DeleteProject
	listServices = store.ListServices
	createService = store.CreateService
	updateService = store.UpdateService
	deleteService = store.DeleteService
}

func TestListHandlersVisibility(t *testing.T) {
	t.Cleanup(restore)
	var visible []bool
	listSkills = func(_ context.Context, _ database.Querier, v bool) ([]model.Skill, error) {
		visible = append(visible, v)
		return nil, nil
	}
	listCompanies = func(_ context.Context, _ database.Querier, v bool) ([]model.Company, error) {
		visible = append(visible, v)
		return nil, nil
	}
	listProjects = func(_ context.Context, _ database.Querier, v bool) ([]model.Project, error) {
		visible = append(visible, v)
		return nil, nil
	}
	listServices = func(_ context.Context, _ database.Querier, v bool) ([]model.Service, error) {
		visible = append(visible, v)
		return nil, nil
	}

	handlers := []func(database.DB) echo.HandlerFunc{
		ListSkillsHandler, AdminListSkillsHandler,
		ListCompaniesHandler, AdminListCompaniesHandler,
		ListProjectsHandler, AdminListProjectsHandler,
		ListServicesHandler, AdminListServicesHandler,
	}
	for _, h := range handlers {
		c, rec := handlertest.New(http.MethodGet, "/", "")
		require.NoError(t, h(nil)(c))
		require.JSONEq(t, `{"success":true,"message":"ok","data":[]}`, rec.Body.String())
	}
	require.Equal(t, []bool{true, false, true, false, true, false, true, false}, visible)

	listSkills = func(context.Context, database.Querier, bool) ([]model.Skill, error) { return nil, errors.New("db") }
	c, rec := handlertest.New(http.MethodGet, "/", "")
	require.NoError(t, ListSkillsHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusInternalServerError, "")
}

func TestDeleteHandlers(t *testing.T) {
	t.Cleanup(restore)
	del := func(_ context.Context, _ database.Querier, id int) error {
		if id == 1 {
			return nil
		}
		return pgx.ErrNoRows
	}
	deleteSkill, deleteCompany, deleteProject, deleteService = del, del, del, del

	cases := map[string]func(database.DB) echo.HandlerFunc{
		"skill":   DeleteSkillHandler,
		"company": DeleteCompanyHandler,
		"project": DeleteProjectHandler,
		"service": DeleteServiceHandler,
	}
	for kind, h := range cases {
		c, rec := handlertest.New(http.MethodDelete, "/", "")
		require.NoError(t, h(nil)(handlertest.Params(c, "id", "1")))
		handlertest.Expect(t, rec, http.StatusOK, kind+" deleted")

		c, rec = handlertest.New(http.MethodDelete, "/", "")
		require.NoError(t, h(nil)(handlertest.Params(c, "id", "2")))
		handlertest.Expect(t, rec, http.StatusNotFound, kind+" not found")

		c, rec = handlertest.New(http.MethodDelete, "/", "")
		require.NoError(t, h(nil)(handlertest.Params(c, "id", "abc")))
		handlertest.Expect(t, rec, http.StatusBadRequest, "invalid id")
	}
}

func TestSkillHandlers(t *testing.T) {
	t.Cleanup(restore)
	createSkill = func(_ context.Context, _ database.Querier, s *model.Skill) (*model.Skill, error) {
		s.ID = 1
		return s, nil
	}
	c, rec := handlertest.New(http.MethodPost, "/", `{"name":"Go","proficiency":101}`)
	require.NoError(t, CreateSkillHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusBadRequest, "proficiency must be at most 100")

	c, rec = handlertest.New(http.MethodPost, "/", `{"name":" Go ","proficiency":90,"is_active":true}`)
	require.NoError(t, CreateSkillHandler(nil)(c))
	var s model.Skill
	handlertest.Data(t, rec, &s)
	require.Equal(t, "Go", s.Name)
	require.Equal(t, 90, s.Proficiency)

	updateSkill = func(context.Context, database.Querier, *model.Skill) error { return pgx.ErrNoRows }
	c, rec = handlertest.New(http.MethodPut, "/", `{"name":"Go"}`)
	require.NoError(t, UpdateSkillHandler(nil)(handlertest.Params(c, "id", "3")))
	handlertest.Expect(t, rec, http.StatusNotFound, "skill not found")
}

func TestCompanyHandlers(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		dbErr error
		code  int
		msg   string
	}{
		{"ok", `{"name":"Acme","started_on":"2021-01-01","ended_on":"2022-01-01"}`, nil, http.StatusCreated, "company created"},
		{"open ended", `{"name":"Acme","started_on":"2021-01-01"}`, nil, http.StatusCreated, "company created"},
		{"reversed dates", `{"name":"Acme","started_on":"2023-01-01","ended_on":"2022-01-01"}`, nil, http.StatusBadRequest, errDateOrder.Error()},
		{"bad date", `{"name":"Acme","started_on":"01/02/2021"}`, nil, http.StatusBadRequest, "started_on is invalid"},
		{"check constraint", `{"name":"Acme"}`, &pgconn.PgError{Code: "23514"}, http.StatusBadRequest, errDateOrder.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			createCompany = func(_ context.Context, _ database.Querier, co *model.Company) (*model.Company, error) {
				if tc.dbErr != nil {
					return nil, tc.dbErr
				}
				require.NotNil(t, co.StartedOn)
				require.Equal(t, 2021, co.StartedOn.Year())
				return co, nil
			}
			c, rec := handlertest.New(http.MethodPost, "/", tc.body)
			require.NoError(t, CreateCompanyHandler(nil)(c))
			handlertest.Expect(t, rec, tc.code, tc.msg)
		})
	}

	t.Run("update missing", func(t *testing.T) {
		t.Cleanup(restore)
		updateCompany = func(context.Context, database.Querier, *model.Company) error { return pgx.ErrNoRows }
		c, rec := handlertest.New(http.MethodPut, "/", `{"name":"Acme"}`)
		require.NoError(t, UpdateCompanyHandler(nil)(handlertest.Params(c, "id", "8")))
		handlertest.Expect(t, rec, http.StatusNotFound, "company not found")
	})
}

func TestProjectHandlers(t *testing.T) {
	t.Cleanup(restore)
	getPublishedProjectBySlug = func(_ context.Context, _ database.Querier, slug string) (*model.Project, error) {
		if slug != "pay" {
			return nil, pgx.ErrNoRows
		}
		return &model.Project{Slug: slug}, nil
	}
	c, rec := handlertest.New(http.MethodGet, "/", "")
	require.NoError(t, GetProjectHandler(nil)(handlertest.Params(c, "slug", "pay")))
	handlertest.Expect(t, rec, http.StatusOK, "ok")
	c, rec = handlertest.New(http.MethodGet, "/", "")
	require.NoError(t, GetProjectHandler(nil)(handlertest.Params(c, "slug", "draft")))
	handlertest.Expect(t, rec, http.StatusNotFound, msgProjectNotFound)

	createProject = func(_ context.Context, _ database.Querier, p *model.Project) (*model.Project, error) {
		require.NotNil(t, p.TechStack)
		if p.CompanyID != nil {
			return nil, &pgconn.PgError{Code: "23503"}
		}
		return p, nil
	}
	c, rec = handlertest.New(http.MethodPost, "/", `{"title":"Payments Platform"}`)
	require.NoError(t, CreateProjectHandler(nil)(c))
	var p model.Project
	handlertest.Data(t, rec, &p)
	require.Equal(t, "payments-platform", p.Slug)
	require.Empty(t, p.TechStack)

	c, rec = handlertest.New(http.MethodPost, "/", `{"title":"Pay","company_id":9}`)
	require.NoError(t, CreateProjectHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusBadRequest, "unknown company")

	updateProject = func(context.Context, database.Querier, *model.Project) error { return &pgconn.PgError{Code: "23505"} }
	c, rec = handlertest.New(http.MethodPut, "/", `{"title":"Pay","tech_stack":["go","postgres"]}`)
	require.NoError(t, UpdateProjectHandler(nil)(handlertest.Params(c, "id", "1")))
	handlertest.Expect(t, rec, http.StatusBadRequest, "slug already exists")
}

func TestServiceHandlers(t *testing.T) {
	t.Cleanup(restore)
	createService = func(_ context.Context, _ database.Querier, s *model.Service) (*model.Service, error) {
		s.ID = 2
		return s, nil
	}
	c, rec := handlertest.New(http.MethodPost, "/", `{"title":"API Review","price_from_cents":-1}`)
	require.NoError(t, CreateServiceHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusBadRequest, "price_from_cents must be at least 0")

	c, rec = handlertest.New(http.MethodPost, "/", `{"title":"API Review"}`)
	require.NoError(t, CreateServiceHandler(nil)(c))
	var s model.Service
	handlertest.Data(t, rec, &s)
	require.Equal(t, "api-review", s.Slug)

	updateService = func(_ context.Context, _ database.Querier, s *model.Service) error {
		require.Equal(t, 2, s.ID)
		return nil
	}
	c, rec = handlertest.New(http.MethodPut, "/", `{"title":"API Review"}`)
	require.NoError(t, UpdateServiceHandler(nil)(handlertest.Params(c, "id", "2")))
	handlertest.Expect(t, rec, http.StatusOK, "service updated")
}
