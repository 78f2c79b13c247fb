// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/handler/auth"
	"portfolio-api/internal/handler/blog"
	"portfolio-api/internal/handler/certificates"
	"portfolio-api/internal/handler/courses"
	"portfolio-api/internal/handler/orders"
	"portfolio-api/internal/handler/portfolio"
	"portfolio-api/internal/handler/quotations"
	"portfolio-api/internal/handler/settings"
	"portfolio-api/internal/handler/users"
	"portfolio-api/internal/handler/wallet"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cc cache.Cache, pool worker.Pool, n notify.Notifier, ttl auth.TokenTTL) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cc))

	// 註冊、登入與 token 輪替
	api.POST("/auth/register", auth.RegisterHandler(db))
	api.POST("/auth/login", auth.LoginHandler(db, cc, ttl))
	api.POST("/auth/refresh", auth.RefreshHandler(db, cc, ttl))
	api.POST("/auth/logout", auth.LogoutHandler(cc), middleware.RequireAuth)

	setupPublic(api, db, cc, pool, n)
	setupMember(api, db, pool, n)
	setupAdmin(api.Group("/admin", middleware.RequireAdmin), db, cc, pool, n)
}

// 不需登入的內容
func setupPublic(g *echo.Group, db database.DB, cc cache.Cache, pool worker.Pool, n notify.Notifier) {
	g.GET("/courses", courses.ListCoursesHandler(db))
	g.GET("/courses/:slug", courses.GetCourseHandler(db))
	g.GET("/certificates/:number", certificates.VerifyCertificateHandler(db))

	g.GET("/blog/posts", blog.ListPostsHandler(db))
	g.GET("/blog/posts/:slug", blog.GetPostHandler(db, pool))
	g.GET("/blog/categories", blog.ListCategoriesHandler(db))

	g.GET("/skills", portfolio.ListSkillsHandler(db))
	g.GET("/companies", portfolio.ListCompaniesHandler(db))
	g.GET("/projects", portfolio.ListProjectsHandler(db))
	g.GET("/projects/:slug", portfolio.GetProjectHandler(db))
	g.GET("/services", portfolio.ListServicesHandler(db))

	g.POST("/quotations", quotations.CreateQuotationHandler(db, pool, n))
	g.GET("/settings", settings.GetSettingsHandler(db, cc))
}

// 登入後才能使用；RequireAuth 逐條掛上，/api 群組本身不帶中介層
func setupMember(g *echo.Group, db database.DB, pool worker.Pool, n notify.Notifier) {
	auth := middleware.RequireAuth

	me := g.Group("/users/me")
	me.GET("", users.GetMeHandler(db), auth)
	me.PUT("", users.UpdateMeHandler(db), auth)
	me.DELETE("", users.DeleteMeHandler(db), auth)
	me.PATCH("/password", users.UpdateMyPasswordHandler(db), auth)
	me.GET("/enrollments", courses.MyEnrollmentsHandler(db), auth)
	me.GET("/certificates", certificates.MyCertificatesHandler(db), auth)

	g.GET("/courses/:id/lessons/:lesson_id", courses.GetLessonHandler(db), auth)
	g.POST("/courses/:id/lessons/:lesson_id/complete", courses.CompleteLessonHandler(db), auth)
	g.POST("/courses/:id/enroll", courses.EnrollHandler(db), auth)

	g.GET("/wallet", wallet.GetWalletHandler(db), auth)
	g.GET("/wallet/transactions", wallet.ListTransactionsHandler(db), auth)
	g.POST("/wallet/deposits", wallet.DepositHandler(db), auth)

	g.POST("/orders", orders.CreateOrderHandler(db, pool, n), auth)
	g.GET("/orders", orders.ListMyOrdersHandler(db), auth)
	g.GET("/orders/:id", orders.GetOrderHandler(db), auth)
	g.POST("/orders/:id/cancel", orders.CancelOrderHandler(db), auth)
}

// 管理員專屬；角色調整另需超級管理員
func setupAdmin(g *echo.Group, db database.DB, cc cache.Cache, pool worker.Pool, n notify.Notifier) {
	g.GET("/dashboard", handler.DashboardHandler(db))

	g.GET("/users", users.ListUsersHandler(db))
	g.POST("/users", users.CreateUserHandler(db))
	g.GET("/users/:id", users.GetUserHandler(db))
	g.PUT("/users/:id", users.UpdateUserHandler(db))
	g.DELETE("/users/:id", users.DeleteUserHandler(db))
	g.PATCH("/users/:id/roles", users.UpdateUserRolesHandler(db), middleware.RequireSuperAdmin)

	g.GET("/courses", courses.AdminListCoursesHandler(db))
	g.POST("/courses", courses.CreateCourseHandler(db))
	g.GET("/courses/:id", courses.AdminGetCourseHandler(db))
	g.PUT("/courses/:id", courses.UpdateCourseHandler(db))
	g.DELETE("/courses/:id", courses.DeleteCourseHandler(db))
	g.GET("/courses/:id/lessons", courses.ListLessonsHandler(db))
	g.POST("/courses/:id/lessons", courses.CreateLessonHandler(db))
	g.PUT("/courses/:id/lessons/:lesson_id", courses.UpdateLessonHandler(db))
	g.DELETE("/courses/:id/lessons/:lesson_id", courses.DeleteLessonHandler(db))
	g.GET("/courses/:id/enrollments", courses.ListCourseEnrollmentsHandler(db))

	g.GET("/certificates", certificates.ListCertificatesHandler(db))
	g.DELETE("/certificates/:id", certificates.RevokeCertificateHandler(db))

	g.POST("/wallets/:user_id/adjustments", wallet.AdjustmentHandler(db))

	g.GET("/orders", orders.AdminListOrdersHandler(db))
	g.PATCH("/orders/:id/status", orders.UpdateOrderStatusHandler(db, pool, n))

	g.GET("/blog/posts", blog.AdminListPostsHandler(db))
	g.POST("/blog/posts", blog.CreatePostHandler(db))
	g.GET("/blog/posts/:id", blog.AdminGetPostHandler(db))
	g.PUT("/blog/posts/:id", blog.UpdatePostHandler(db))
	g.DELETE("/blog/posts/:id", blog.DeletePostHandler(db))
	g.POST("/blog/categories", blog.CreateCategoryHandler(db))
	g.PUT("/blog/categories/:id", blog.UpdateCategoryHandler(db))
	g.DELETE("/blog/categories/:id", blog.DeleteCategoryHandler(db))

	g.GET("/skills", portfolio.AdminListSkillsHandler(db))
	g.POST("/skills", portfolio.CreateSkillHandler(db))
	g.PUT("/skills/:id", portfolio.UpdateSkillHandler(db))
	g.DELETE("/skills/:id", portfolio.DeleteSkillHandler(db))
	g.GET("/companies", portfolio.AdminListCompaniesHandler(db))
	g.POST("/companies", portfolio.CreateCompanyHandler(db))
	g.PUT("/companies/:id", portfolio.UpdateCompanyHandler(db))
	g.DELETE("/companies/:id", portfolio.DeleteCompanyHandler(db))
	g.GET("/projects", portfolio.AdminListProjectsHandler(db))
	g.POST("/projects", portfolio.CreateProjectHandler(db))
	g.PUT("/projects/:id", portfolio.UpdateProjectHandler(db))
	g.DELETE("/projects/:id", portfolio.DeleteProjectHandler(db))
	g.GET("/services", portfolio.AdminListServicesHandler(db))
	g.POST("/services", portfolio.CreateServiceHandler(db))
	g.PUT("/services/:id", portfolio.UpdateServiceHandler(db))
	g.DELETE("/services/:id", portfolio.DeleteServiceHandler(db))

	g.GET("/quotations", quotations.ListQuotationsHandler(db))
	g.GET("/quotations/:id", quotations.GetQuotationHandler(db))
	g.PATCH("/quotations/:id/status", quotations.UpdateQuotationStatusHandler(db))
	g.DELETE("/quotations/:id", quotations.DeleteQuotationHandler(db))

	g.PUT("/settings", settings.SaveSettingsHandler(db, cc))
}
