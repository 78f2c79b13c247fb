// File: internal/store/enrollment.go
package store

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const enrollmentColumns = `id, user_id, course_id, status, progress, completed_at, created_at, updated_at`

func enrollmentDest(e *model.Enrollment) []any {
	return []any{&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.Progress, &e.CompletedAt, &e.CreatedAt, &e.UpdatedAt}
}

func GetEnrollment(ctx context.Context, db database.Querier, userID, courseID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	if err := db.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM course_enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(enrollmentDest(e)...); err != nil {
		return nil, fmt.Errorf("GetEnrollment: %w", err)
	}
	return e, nil
}

// CreateEnrollment 已報名時回傳既有紀錄，created 為 false
func CreateEnrollment(ctx context.Context, db database.Querier, userID, courseID int) (*model.Enrollment, bool, error) {
	e := &model.Enrollment{}
	err := db.QueryRow(ctx,
		`INSERT INTO course_enrollments (user_id, course_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO NOTHING
		 RETURNING `+enrollmentColumns,
		userID, courseID,
	).Scan(enrollmentDest(e)...)
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("CreateEnrollment: %w", err)
	}
	existing, err := GetEnrollment(ctx, db, userID, courseID)
	if err != nil {
		return nil, false, fmt.Errorf("CreateEnrollment: %w", err)
	}
	return existing, false, nil
}

// ActivateEnrollment 付款後建立報名；已撤銷的報名會重新啟用，進度保留
func ActivateEnrollment(ctx context.Context, db database.Querier, userID, courseID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	if err := db.QueryRow(ctx,
		`INSERT INTO course_enrollments (user_id, course_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO UPDATE
		 SET status = CASE WHEN course_enrollments.status = 'revoked'
		                   THEN CASE WHEN course_enrollments.progress = 100 THEN 'completed' ELSE 'active' END
		                   ELSE course_enrollments.status END,
		     updated_at = now()
		 RETURNING `+enrollmentColumns,
		userID, courseID,
	).Scan(enrollmentDest(e)...); err != nil {
		return nil, fmt.Errorf("ActivateEnrollment: %w", err)
	}
	return e, nil
}

// UpdateEnrollmentProgress completed 為 true 時標記完成並記錄首次完成時間
func UpdateEnrollmentProgress(ctx context.Context, db database.Querier, id, progress int, completed bool) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	if err := db.QueryRow(ctx,
		`UPDATE course_enrollments
		 SET progress = $2,
		     status = CASE WHEN $3 THEN 'completed' ELSE status END,
		     completed_at = CASE WHEN $3 AND completed_at IS NULL THEN now() ELSE completed_at END,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+enrollmentColumns,
		id, progress, completed,
	).Scan(enrollmentDest(e)...); err != nil {
		return nil, fmt.Errorf("UpdateEnrollmentProgress: %w", err)
	}
	return e, nil
}

func RevokeEnrollment(ctx context.Context, db database.Querier, userID, courseID int) error {
	tag, err := db.Exec(ctx,
		`UPDATE course_enrollments SET status = 'revoked', updated_at = now()
		 WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	)
	return affected("RevokeEnrollment", tag, err)
}

// ListUserEnrollments 帶出課程名稱與 slug
func ListUserEnrollments(ctx context.Context, db database.Querier, userID int) ([]model.Enrollment, error) {
	rows, err := db.Query(ctx,
		`SELECT e.id, e.user_id, e.course_id, e.status, e.progress, e.completed_at, e.created_at, e.updated_at,
		        c.title, c.slug
		 FROM course_enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at DESC, e.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUserEnrollments: %w", err)
	}
	list, err := collectAll(rows, func(e *model.Enrollment) []any {
		return append(enrollmentDest(e), &e.CourseTitle, &e.CourseSlug)
	})
	if err != nil {
		return nil, fmt.Errorf("ListUserEnrollments: %w", err)
	}
	return list, nil
}

// ListCourseEnrollments 後台查看某課程的學員
func ListCourseEnrollments(ctx context.Context, db database.Querier, courseID int) ([]model.Enrollment, error) {
	rows, err := db.Query(ctx,
		`SELECT e.id, e.user_id, e.course_id, e.status, e.progress, e.completed_at, e.created_at, e.updated_at,
		        u.name, u.email
		 FROM course_enrollments e
		 JOIN users u ON u.id = e.user_id
		 WHERE e.course_id = $1
		 ORDER BY e.created_at DESC, e.id DESC`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCourseEnrollments: %w", err)
	}
	list, err := collectAll(rows, func(e *model.Enrollment) []any {
		return append(enrollmentDest(e), &e.UserName, &e.UserEmail)
	})
	if err != nil {
		return nil, fmt.Errorf("ListCourseEnrollments: %w", err)
	}
	return list, nil
}
