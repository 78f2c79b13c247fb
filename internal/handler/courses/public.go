// File: internal/handler/courses/public.go
package courses

import (
	"net/http"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listCourses              = store.ListCourses
	getCourseByID            = store.GetCourseByID
	getPublishedCourseBySlug = store.GetPublishedCourseBySlug
	createCourse             = store.CreateCourse
	updateCourse             = store.UpdateCourse
	deleteCourse             = store.DeleteCourse
	listLessons              = store.ListLessons
	listLessonOutline        = store.ListLessonOutline
	getLesson                = store.GetLesson
	createLesson             = store.CreateLesson
	updateLesson             = store.UpdateLesson
	deleteLesson             = store.DeleteLesson
	getEnrollment            = store.GetEnrollment
	createEnrollment         = store.CreateEnrollment
	listUserEnrollments      = store.ListUserEnrollments
	listCourseEnrollments    = store.ListCourseEnrollments
	completeLesson           = service.CompleteLesson
)

const (
	msgUnauthorized   = "invalid or missing token"
	msgCourseNotFound = "course not found"
	msgLessonNotFound = "lesson not found"
)

// @Summary     List published courses
// @Tags        courses
// @Produce     json
// @Param       page  query    int    false "頁碼"
// @Param       limit query    int    false "每頁筆數"
// @Param       q     query    string false "關鍵字"
// @Success     200   {object} api.Response{data=api.List{items=[]model.Course}}
// @Failure     400   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /courses [get]
func ListCoursesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		courses, total, err := listCourses(c.Request().Context(), db, page.Params(), true)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(courses, page, total))
	}
}

// @Summary     Get a published course
// @Description 回傳課程與已發佈單元大綱，不含單元內容
// @Tags        courses
// @Produce     json
// @Param       slug path     string true "課程 slug"
// @Success     200  {object} api.Response{data=model.CourseDetail}
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /courses/{slug} [get]
func GetCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		course, err := getPublishedCourseBySlug(ctx, db, c.Param("slug"))
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		lessons, err := listLessonOutline(ctx, db, course.ID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", model.CourseDetail{Course: *course, Lessons: api.Empty(lessons)})
	}
}
