// File: internal/handler/courses/learn.go
package courses

import (
	"errors"
	"net/http"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

// courseAndLesson 解析 :id 與 :lesson_id
func courseAndLesson(c echo.Context) (int, int, error) {
	courseID, err := api.ParseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	lessonID, err := api.ParseID(c, "lesson_id")
	if err != nil {
		return 0, 0, err
	}
	return courseID, lessonID, nil
}

// @Summary     Get a lesson
// @Description 試看單元開放所有登入者；其餘需有效報名或管理員身分
// @Tags        courses
// @Produce     json
// @Param       id        path     int true "課程 ID"
// @Param       lesson_id path     int true "單元 ID"
// @Success     200       {object} api.Response{data=model.Lesson}
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     403       {object} api.ErrorResponse
// @Failure     404       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /courses/{id}/lessons/{lesson_id} [get]
func GetLessonHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		courseID, lessonID, err := courseAndLesson(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		lesson, err := getLesson(ctx, db, courseID, lessonID)
		if store.IsNotFound(err) {
			return api.Fail(c, http.StatusNotFound, msgLessonNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if claims.HasAdminAccess() {
			return api.OK(c, http.StatusOK, "ok", lesson)
		}
		if !lesson.IsPublished {
			return api.Fail(c, http.StatusNotFound, msgLessonNotFound)
		}
		// 未上架課程的單元對一般使用者一律不可見，試看單元也一樣
		course, err := getCourseByID(ctx, db, courseID)
		if store.IsNotFound(err) || (err == nil && !course.IsPublished) {
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if lesson.IsPreview {
			return api.OK(c, http.StatusOK, "ok", lesson)
		}

		enr, err := getEnrollment(ctx, db, claims.UserID, courseID)
		if err != nil && !store.IsNotFound(err) {
			return api.InternalError(c, err)
		}
		if enr == nil || !enr.GrantsAccess() {
			return api.Fail(c, http.StatusForbidden, service.ErrNotEnrolled.Error())
		}
		return api.OK(c, http.StatusOK, "ok", lesson)
	}
}

// @Summary     Enroll in a free course
// @Description 只限免費課程；重複報名回傳既有紀錄
// @Tags        courses
// @Produce     json
// @Param       id  path     int true "課程 ID"
// @Success     200 {object} api.Response{data=model.Enrollment}
// @Success     201 {object} api.Response{data=model.Enrollment}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /courses/{id}/enroll [post]
func EnrollHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		courseID, err := api.ParseID(c, "id")
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		course, err := getCourseByID(ctx, db, courseID)
		if store.IsNotFound(err) || (err == nil && !course.IsPublished) {
			return api.Fail(c, http.StatusNotFound, msgCourseNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if !course.IsFree() {
			return api.Fail(c, http.StatusBadRequest, service.ErrCourseNotFree.Error())
		}

		enr, created, err := createEnrollment(ctx, db, claims.UserID, courseID)
		if err != nil {
			return api.InternalError(c, err)
		}
		if !created {
			return api.OK(c, http.StatusOK, "already enrolled", enr)
		}
		return api.OK(c, http.StatusCreated, "enrolled", enr)
	}
}

// @Summary     Complete a lesson
// @Description 標記單元完成並更新進度；完成全部單元時核發證書
// @Tags        courses
// @Produce     json
// @Param       id        path     int true "課程 ID"
// @Param       lesson_id path     int true "單元 ID"
// @Success     200       {object} api.Response{data=api.CompleteLessonResponse}
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     403       {object} api.ErrorResponse
// @Failure     404       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /courses/{id}/lessons/{lesson_id}/complete [post]
func CompleteLessonHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		courseID, lessonID, err := courseAndLesson(c)
		if err != nil {
			return api.Fail(c, http.StatusBadRequest, err.Error())
		}

		enr, cert, err := completeLesson(c.Request().Context(), db, claims.UserID, courseID, lessonID)
		switch {
		case errors.Is(err, service.ErrNotEnrolled):
			return api.Fail(c, http.StatusForbidden, err.Error())
		case store.IsNotFound(err):
			return api.Fail(c, http.StatusNotFound, msgLessonNotFound)
		case err != nil:
			return api.InternalError(c, err)
		}
		msg := "lesson completed"
		if cert != nil {
			msg = "course completed"
		}
		return api.OK(c, http.StatusOK, msg, api.CompleteLessonResponse{Enrollment: enr, Certificate: cert})
	}
}

// @Summary     List my enrollments
// @Tags        courses
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Enrollment}
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me/enrollments [get]
func MyEnrollmentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return api.Fail(c, http.StatusUnauthorized, msgUnauthorized)
		}
		list, err := listUserEnrollments(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return api.OK(c, http.StatusOK, "ok", api.Empty(list))
	}
}
