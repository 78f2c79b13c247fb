// File: internal/handler/blog/public.go
package blog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	listBlogPosts          = store.ListBlogPosts
	getPublishedBlogPost   = store.GetPublishedBlogPost
	getBlogPostByID        = store.GetBlogPostByID
	createBlogPost         = store.CreateBlogPost
	updateBlogPost         = store.UpdateBlogPost
	deleteBlogPost         = store.DeleteBlogPost
	incrementBlogPostViews = store.IncrementBlogPostViews
	listBlogCategories     = store.ListBlogCategories
	createBlogCategory     = store.CreateBlogCategory
	updateBlogCategory     = store.UpdateBlogCategory
	deleteBlogCategory     = store.DeleteBlogCategory
)

const (
	msgPostNotFound     = "post not found"
	msgCategoryNotFound = "category not found"
	viewTimeout         = 5 * time.Second
)

// @Summary     List published posts
// @Description 依發佈時間新到舊，列表不含內文
// @Tags        blog
// @Produce     json
// @Param       page     query    int    false "頁碼"
// @Param       limit    query    int    false "每頁筆數"
// @Param       category query    string false "分類 slug"
// @Param       q        query    string false "關鍵字"
// @Success     200      {object} api.Response{data=api.List{items=[]model.BlogPost}}
// @Failure     400      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /blog/posts [get]
func ListPostsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		filter := store.BlogPostFilter{PublishedOnly: true, CategorySlug: c.QueryParam("category")}
		posts, total, err := listBlogPosts(c.Request().Context(), db, filter, page.Params())
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(posts, page, total))
	}
}

// @Summary     Get a published post
// @Description 瀏覽次數在背景累加
// @Tags        blog
// @Produce     json
// @Param       slug path     string true "文章 slug"
// @Success     200  {object} api.Response{data=model.BlogPost}
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /blog/posts/{slug} [get]
func GetPostHandler(db database.DB, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := getPublishedBlogPost(c.Request().Context(), db, c.Param("slug"))
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgPostNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}

		id := post.ID
		pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), viewTimeout)
			defer cancel()
			if err := incrementBlogPostViews(ctx, db, id); err != nil {
				slog.Warn("increment post views failed", "post_id", id, "error", err)
			}
		})
		return api.OK(c, http.StatusOK, "ok", post)
	}
}

// @Summary     List blog categories
// @Description post_count 只計算已發佈文章
// @Tags        blog
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.BlogCategory}
// @Failure     500 {object} api.ErrorResponse
// @Router      /blog/categories [get]
func ListCategoriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listBlogCategories(c.Request().Context(), db)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.Empty(list))
	}
}
