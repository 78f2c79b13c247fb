package store

import (
	"context"
	"testing"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func blogPostValues(p model.BlogPost) []any {
	return []any{p.ID, nil, nil, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImageURL,
		p.IsPublished, nil, p.ViewCount, p.CreatedAt, p.UpdatedAt, nil, nil}
}

func TestBlogPosts(t *testing.T) {
	p := model.BlogPost{ID: 1, Title: "Hello", Slug: "hello", Content: "body", IsPublished: true, ViewCount: 3, CreatedAt: now, UpdatedAt: now}

	var args []any
	db := &database.FakeDB{QueryFn: func(_ context.Context, _ string, a ...any) (pgx.Rows, error) {
		args = a
		v := blogPostValues(p)
		v[6] = ""
		v[13] = "News"
		return &database.FakeRows{Data: [][]any{append(v, 1)}}, nil
	}}
	list, total, err := ListBlogPosts(ctx, db, BlogPostFilter{PublishedOnly: true, CategorySlug: "news"}, ListParams{Limit: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "News", *list[0].CategoryName)
	require.Empty(t, list[0].Content)
	require.Equal(t, []any{true, "news", "", 20, 0}, args)

	_, _, err = ListBlogPosts(ctx, queryDB(nil, errDB), BlogPostFilter{}, ListParams{})
	require.ErrorIs(t, err, errDB)

	got, err := GetPublishedBlogPost(ctx, rowDB(database.FakeRow{Values: blogPostValues(p)}), "hello")
	require.NoError(t, err)
	require.Equal(t, "body", got.Content)
	require.Nil(t, got.CategoryID)

	_, err = GetBlogPostByID(ctx, rowDB(database.FakeRow{Err: pgx.ErrNoRows}), 1)
	require.True(t, IsNotFound(err))

	created, err := CreateBlogPost(ctx, rowDB(database.FakeRow{Values: []any{7, now, 0, now, now}}), &model.BlogPost{Title: "x", IsPublished: true})
	require.NoError(t, err)
	require.Equal(t, 7, created.ID)
	require.Equal(t, now, *created.PublishedAt)

	upd := &model.BlogPost{ID: 7}
	require.NoError(t, UpdateBlogPost(ctx, rowDB(database.FakeRow{Values: []any{5, nil, 2, now, now}}), upd))
	require.Equal(t, 5, *upd.AuthorID)
	require.Nil(t, upd.PublishedAt)
	require.True(t, IsNotFound(UpdateBlogPost(ctx, rowDB(database.FakeRow{Err: pgx.ErrNoRows}), upd)))

	require.NoError(t, DeleteBlogPost(ctx, execDB("DELETE 1", nil), 7))
	require.NoError(t, IncrementBlogPostViews(ctx, execDB("UPDATE 1", nil), 7))
	require.True(t, IsNotFound(IncrementBlogPostViews(ctx, execDB("UPDATE 0", nil), 7)))
}

func TestBlogCategories(t *testing.T) {
	list, err := ListBlogCategories(ctx, queryDB(&database.FakeRows{Data: [][]any{{1, "News", "news", "", now, 4}}}, nil))
	require.NoError(t, err)
	require.Equal(t, 4, list[0].PostCount)

	_, err = ListBlogCategories(ctx, queryDB(nil, errDB))
	require.ErrorIs(t, err, errDB)

	c, err := CreateBlogCategory(ctx, rowDB(database.FakeRow{Values: []any{2, now}}), &model.BlogCategory{Name: "Go"})
	require.NoError(t, err)
	require.Equal(t, 2, c.ID)

	require.NoError(t, UpdateBlogCategory(ctx, rowDB(database.FakeRow{Values: []any{now}}), c))
	require.True(t, IsNotFound(UpdateBlogCategory(ctx, rowDB(database.FakeRow{Err: pgx.ErrNoRows}), c)))
	require.True(t, IsNotFound(DeleteBlogCategory(ctx, execDB("DELETE 0", nil), 2)))
}

func TestPortfolio(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	skills, err := ListSkills(ctx, queryDB(&database.FakeRows{Data: [][]any{{1, "Go", "backend", 90, "", 0, true, now, now}}}, nil), true)
	require.NoError(t, err)
	require.Equal(t, 90, skills[0].Proficiency)

	companies, err := ListCompanies(ctx, queryDB(&database.FakeRows{Data: [][]any{{1, "Acme", "Dev", "", "", "", start, nil, 0, true, now, now}}}, nil), false)
	require.NoError(t, err)
	require.Equal(t, start, *companies[0].StartedOn)
	require.Nil(t, companies[0].EndedOn)

	projectRow := []any{1, 2, "Site", "site", "", "", "", "", "", []string{"go", "pgx"}, true, true, 0, now, now}
	projects, err := ListProjects(ctx, queryDB(&database.FakeRows{Data: [][]any{projectRow}}, nil), true)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "pgx"}, projects[0].TechStack)
	require.Equal(t, 2, *projects[0].CompanyID)

	p, err := GetPublishedProjectBySlug(ctx, rowDB(database.FakeRow{Values: projectRow}), "site")
	require.NoError(t, err)
	require.Equal(t, "Site", p.Title)

	services, err := ListServices(ctx, queryDB(&database.FakeRows{Data: [][]any{{1, "Consulting", "consulting", "", "", int64(5000), 0, true, now, now}}}, nil), true)
	require.NoError(t, err)
	require.Equal(t, int64(5000), services[0].PriceFromCents)

	for name, fn := range map[string]func(database.Querier) error{
		"skill":   func(db database.Querier) error { _, err := CreateSkill(ctx, db, &model.Skill{}); return err },
		"company": func(db database.Querier) error { _, err := CreateCompany(ctx, db, &model.Company{}); return err },
		"project": func(db database.Querier) error { _, err := CreateProject(ctx, db, &model.Project{}); return err },
		"service": func(db database.Querier) error { _, err := CreateService(ctx, db, &model.Service{}); return err },
	} {
		require.NoError(t, fn(rowDB(database.FakeRow{Values: []any{1, now, now}})), name)
		require.ErrorIs(t, fn(rowDB(database.FakeRow{Err: errDB})), errDB, name)
	}

	for name, fn := range map[string]func(database.Querier) error{
		"skill":   func(db database.Querier) error { return UpdateSkill(ctx, db, &model.Skill{ID: 1}) },
		"company": func(db database.Querier) error { return UpdateCompany(ctx, db, &model.Company{ID: 1}) },
		"project": func(db database.Querier) error { return UpdateProject(ctx, db, &model.Project{ID: 1}) },
		"service": func(db database.Querier) error { return UpdateService(ctx, db, &model.Service{ID: 1}) },
	} {
		require.NoError(t, fn(rowDB(database.FakeRow{Values: []any{now, now}})), name)
		require.True(t, IsNotFound(fn(rowDB(database.FakeRow{Err: pgx.ErrNoRows}))), name)
	}

	for name, fn := range map[string]func(database.Querier) error{
		"skill":   func(db database.Querier) error { return DeleteSkill(ctx, db, 1) },
		"company": func(db database.Querier) error { return DeleteCompany(ctx, db, 1) },
		"project": func(db database.Querier) error { return DeleteProject(ctx, db, 1) },
		"service": func(db database.Querier) error { return DeleteService(ctx, db, 1) },
	} {
		require.NoError(t, fn(execDB("DELETE 1", nil)), name)
		require.True(t, IsNotFound(fn(execDB("DELETE 0", nil))), name)
	}
}

func TestQuotations(t *testing.T) {
	q, err := CreateQuotation(ctx, rowDB(database.FakeRow{Values: []any{1, model.QuotationNew, now, now}}), &model.Quotation{Name: "Bob"})
	require.NoError(t, err)
	require.Equal(t, model.QuotationNew, q.Status)

	row := []any{1, 2, "Bob", "bob@x.io", "", "", "hi", model.QuotationNew, now, now, "Consulting"}
	list, total, err := ListQuotations(ctx, queryDB(&database.FakeRows{Data: [][]any{append(row, 1)}}, nil), model.QuotationNew, ListParams{Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Consulting", *list[0].ServiceTitle)

	got, err := GetQuotation(ctx, rowDB(database.FakeRow{Values: row}), 1)
	require.NoError(t, err)
	require.Equal(t, 2, *got.ServiceID)

	require.NoError(t, UpdateQuotationStatus(ctx, execDB("UPDATE 1", nil), 1, model.QuotationAccepted))
	require.True(t, IsNotFound(UpdateQuotationStatus(ctx, execDB("UPDATE 0", nil), 1, model.QuotationAccepted)))
	require.True(t, IsNotFound(DeleteQuotation(ctx, execDB("DELETE 0", nil), 1)))
}

func TestSettingsAndDashboard(t *testing.T) {
	s, err := ListSettings(ctx, queryDB(&database.FakeRows{Data: [][]any{{"site.title", "Hi"}, {"contact_email", "a@b.c"}}}, nil))
	require.NoError(t, err)
	require.Equal(t, model.Settings{"site.title": "Hi", "contact_email": "a@b.c"}, s)

	_, err = ListSettings(ctx, queryDB(nil, errDB))
	require.ErrorIs(t, err, errDB)
	_, err = ListSettings(ctx, queryDB(&database.FakeRows{ErrVal: errDB}, nil))
	require.ErrorIs(t, err, errDB)

	require.NoError(t, UpsertSetting(ctx, execDB("INSERT 0 1", nil), "k", "v"))
	require.ErrorIs(t, UpsertSetting(ctx, execDB("", errDB), "k", "v"), errDB)

	stats, err := GetDashboardStats(ctx, rowDB(database.FakeRow{Values: []any{10, 4, 3, 20, 5, 8, int64(8000), int64(1000), 2}}), now)
	require.NoError(t, err)
	require.Equal(t, model.DashboardStats{
		Users: 10, Courses: 4, PublishedCourses: 3, Enrollments: 20, CompletedEnrollments: 5,
		PaidOrders: 8, RevenueCents: 8000, RevenueTodayCents: 1000, PendingQuotations: 2,
	}, *stats)

	_, err = GetDashboardStats(ctx, rowDB(database.FakeRow{Err: errDB}), now)
	require.ErrorIs(t, err, errDB)
}
