// File: internal/handler/blog/admin.go
package blog

import (
	"net/http"
	"strings"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

func postFromRequest(req api.BlogPostRequest) *model.BlogPost {
	return &model.BlogPost{
		CategoryID:    req.CategoryID,
		Title:         strings.TrimSpace(req.Title),
		Slug:          service.EnsureSlug(req.Slug, req.Title),
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		IsPublished:   req.IsPublished,
	}
}

// postWriteError 處理新增與更新文章共用的錯誤
func postWriteError(c echo.Context, err error) error {
	switch {
	case store.IsUniqueViolation(err):
		return api.Fail(c, http.StatusBadRequest, "slug already exists")
	case store.IsForeignKeyViolation(err):
		return api.Fail(c, http.StatusBadRequest, "unknown category")
	case store.IsNotFound(err):
		return api.Fail(c, http.StatusNotFound, msgPostNotFound)
	}
	return api.InternalError(c, err)
}

// @Summary     List all posts
// @Description 包含草稿
// @Tags        admin-blog
// @Produce     json
// @Param       page     query    int    false "頁碼"
// @Param       limit    query    int    false "每頁筆數"
// @Param       category query    string false "分類 slug"
// @Param       q        query    string false "關鍵字"
// @Success     200      {object} api.Response{data=api.List{items=[]model.BlogPost}}
// @Failure     400      {object} api.ErrorResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     403      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/posts [get]
func AdminListPostsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		filter := store.BlogPostFilter{CategorySlug: c.QueryParam("category")}
		posts, total, err := listBlogPosts(c.Request().Context(), db, filter, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(posts, page, total))
	}
}

// @Summary     Create a post
// @Description 作者為目前登入的管理員；發佈時寫入 published_at
// @Tags        admin-blog
// @Accept      json
// @Produce     json
// @Param       body body     api.BlogPostRequest true "文章"
// @Success     201  {object} api.Response{data=model.BlogPost}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/posts [post]
func CreatePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, "invalid or missing token")
		}
		var req api.BlogPostRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		post := postFromRequest(req)
		author := claims.UserID
		post.AuthorID = &author
		post, err := createBlogPost(c.Request().Context(), db, post)
		if err != nil {
			return postWriteError(c, err)
		}
		return api.OK(c, http.StatusCreated, "post created", post)
	}
}

// @Summary     Get a post by ID
// @Tags        admin-blog
// @Produce     json
// @Param       id  path     int true "文章 ID"
// @Success     200 {object} api.Response{data=model.BlogPost}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/posts/{id} [get]
func AdminGetPostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		post, err := getBlogPostByID(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgPostNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", post)
	}
}

// @Summary     Update a post
// @Tags        admin-blog
// @Accept      json
// @Produce     json
// @Param       id   path     int                 true "文章 ID"
// @Param       body body     api.BlogPostRequest true "文章"
// @Success     200  {object} api.Response{data=model.BlogPost}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/posts/{id} [put]
func UpdatePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.BlogPostRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		post := postFromRequest(req)
		post.ID = id
		if err := updateBlogPost(c.Request().Context(), db, post); err != nil {
			return postWriteError(c, err)
		}
		return api.OK(c, http.StatusOK, "post updated", post)
	}
}

// @Summary     Delete a post
// @Tags        admin-blog
// @Produce     json
// @Param       id  path     int true "文章 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/posts/{id} [delete]
func DeletePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		err = deleteBlogPost(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgPostNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "post deleted", nil)
	}
}

func categoryFromRequest(req api.BlogCategoryRequest) *model.BlogCategory {
	return &model.BlogCategory{
		Name:        strings.TrimSpace(req.Name),
		Slug:        service.EnsureSlug(req.Slug, req.Name),
		Description: req.Description,
	}
}

// @Summary     Create a category
// @Tags        admin-blog
// @Accept      json
// @Produce     json
// @Param       body body     api.BlogCategoryRequest true "分類"
// @Success     201  {object} api.Response{data=model.BlogCategory}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/categories [post]
func CreateCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.BlogCategoryRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		cat, err := createBlogCategory(c.Request().Context(), db, categoryFromRequest(req))
		if store.IsUniqueViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "slug already exists")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "category created", cat)
	}
}

// @Summary     Update a category
// @Tags        admin-blog
// @Accept      json
// @Produce     json
// @Param       id   path     int                     true "分類 ID"
// @Param       body body     api.BlogCategoryRequest true "分類"
// @Success     200  {object} api.Response{data=model.BlogCategory}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/categories/{id} [put]
func UpdateCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.BlogCategoryRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		cat := categoryFromRequest(req)
		cat.ID = id
		err = updateBlogCategory(c.Request().Context(), db, cat)
		switch {
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, msgCategoryNotFound)
		case store.IsUniqueViolation(err):
			return api.Fail(c, http.StatusBadRequest, "slug already exists")
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "category updated", cat)
	}
}

// @Summary     Delete a category
// @Description 文章保留，分類設為空值
// @Tags        admin-blog
// @Produce     json
// @Param       id  path     int true "分類 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/blog/categories/{id} [delete]
func DeleteCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		err = deleteBlogCategory(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgCategoryNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "category deleted", nil)
	}
}
