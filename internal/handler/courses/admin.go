// File: internal/handler/courses/admin.go
package courses

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

const defaultLevel = "beginner"

func courseFromRequest(req api.CourseRequest) *model.Course {
	level := req.Level
	if level == "" {
		level = defaultLevel
	}
	return &model.Course{
		Title:        strings.TrimSpace(req.Title),
		Slug:         service.EnsureSlug(req.Slug, req.Title),
		Summary:      req.Summary,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		PriceCents:   req.PriceCents,
		Level:        level,
		IsPublished:  req.IsPublished,
	}
}

func lessonFromRequest(courseID int, req api.LessonRequest) *model.Lesson {
	return &model.Lesson{
		CourseID:        courseID,
		Title:           strings.TrimSpace(req.Title),
		Content:         req.Content,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
		Position:        req.Position,
		IsPreview:       req.IsPreview,
		IsPublished:     req.IsPublished,
	}
}

// @Summary     List all courses
// @Tags        admin-courses
// @Produce     json
// @Param       page  query    int    false "頁碼"
// @Param       limit query    int    false "每頁筆數"
// @Param       q     query    string false "關鍵字"
// @Success     200   {object} api.Response{data=api.List{items=[]model.Course}}
// @Failure     400   {object} api.ErrorResponse
// @Failure     401   {object} api.ErrorResponse
// @Failure     403   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses [get]
func AdminListCoursesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePage(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		courses, total, err := listCourses(c.Request().Context(), db, page.Params(), false)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.NewList(courses, page, total))
	}
}

// @Summary     Create a course
// @Description slug 留空時由標題產生
// @Tags        admin-courses
// @Accept      json
// @Produce     json
// @Param       body body     api.CourseRequest true "課程"
// @Success     201  {object} api.Response{data=model.Course}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses [post]
func CreateCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CourseRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		course, err := createCourse(c.Request().Context(), db, courseFromRequest(req))
		if store.IsUniqueViolation(err) {
			return api.Fail(c, http.StatusBadRequest, "slug already exists")
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "course created", course)
	}
}

// @Summary     Get a course by ID
// @Tags        admin-courses
// @Produce     json
// @Param       id  path     int true "課程 ID"
// @Success     200 {object} api.Response{data=model.Course}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id} [get]
func AdminGetCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		course, err := getCourseByID(c.Request().Context(), db, id)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", course)
	}
}

// @Summary     Update a course
// @Tags        admin-courses
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "課程 ID"
// @Param       body body     api.CourseRequest true "課程"
// @Success     200  {object} api.Response{data=model.Course}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id} [put]
func UpdateCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.CourseRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		course := courseFromRequest(req)
		course.ID = id
		err = updateCourse(c.Request().Context(), db, course)
		switch {
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		case store.IsUniqueViolation(err):
			return api.Fail(c, http.StatusBadRequest, "slug already exists")
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "course updated", course)
	}
}

// @Summary     Delete a course
// @Description 已有訂單的課程無法刪除
// @Tags        admin-courses
// @Produce     json
// @Param       id  path     int true "課程 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id} [delete]
func DeleteCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		err = deleteCourse(c.Request().Context(), db, id)
		switch {
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		case store.IsForeignKeyViolation(err):
			return api.Fail(c, http.StatusBadRequest, "course has orders and cannot be deleted")
		case err != nil:
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "course deleted", nil)
	}
}

// @Summary     List lessons of a course
// @Description 包含未發佈單元與完整內容
// @Tags        admin-courses
// @Produce     json
// @Param       id  path     int true "課程 ID"
// @Success     200 {object} api.Response{data=[]model.Lesson}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id}/lessons [get]
func ListLessonsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		ctx := c.Request().Context()
		if _, err := getCourseByID(ctx, db, id); err != nil {
			if store.IsNotFound(err) {
				return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
			}
			return api.InternalError(c, err)
		}
		lessons, err := listLessons(ctx, db, id)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.Empty(lessons))
	}
}

// @Summary     Create a lesson
// @Tags        admin-courses
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "課程 ID"
// @Param       body body     api.LessonRequest true "單元"
// @Success     201  {object} api.Response{data=model.Lesson}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id}/lessons [post]
func CreateLessonHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.LessonRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		lesson, err := createLesson(c.Request().Context(), db, lessonFromRequest(id, req))
		if store.IsForeignKeyViolation(err) {
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusCreated, "lesson created", lesson)
	}
}

// @Summary     Update a lesson
// @Tags        admin-courses
// @Accept      json
// @Produce     json
// @Param       id        path     int               true "課程 ID"
// @Param       lesson_id path     int               true "單元 ID"
// @Param       body      body     api.LessonRequest true "單元"
// @Success     200       {object} api.Response{data=model.Lesson}
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     403       {object} api.ErrorResponse
// @Failure     404       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id}/lessons/{lesson_id} [put]
func UpdateLessonHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		courseID, lessonID, err := courseAndLesson(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		var req api.LessonRequest
		if err := api.Decode(c, &req); err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		lesson := lessonFromRequest(courseID, req)
		lesson.ID = lessonID
		err = updateLesson(c.Request().Context(), db, lesson)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgLessonNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "lesson updated", lesson)
	}
}

// @Summary     Delete a lesson
// @Tags        admin-courses
// @Produce     json
// @Param       id        path     int true "課程 ID"
// @Param       lesson_id path     int true "單元 ID"
// @Success     200       {object} api.Response
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     403       {object} api.ErrorResponse
// @Failure     404       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id}/lessons/{lesson_id} [delete]
func DeleteLessonHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		courseID, lessonID, err := courseAndLesson(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		err = deleteLesson(c.Request().Context(), db, courseID, lessonID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgLessonNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "lesson deleted", nil)
	}
}

// @Summary     List enrollments of a course
// @Tags        admin-courses
// @Produce     json
// @Param       id  path     int true "課程 ID"
// @Success     200 {object} api.Response{data=[]model.Enrollment}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/courses/{id}/enrollments [get]
func ListCourseEnrollmentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}
		list, err := listCourseEnrollments(c.Request().Context(), db, id)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.Empty(list))
	}
}
