// File: internal/store/lesson.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

const lessonColumns = `id, course_id, title, content, video_url, duration_minutes, position, is_preview, is_published, created_at, updated_at`

func lessonDest(l *model.Lesson) []any {
	return []any{&l.ID, &l.CourseID, &l.Title, &l.Content, &l.VideoURL, &l.DurationMinutes, &l.Position, &l.IsPreview, &l.IsPublished, &l.CreatedAt, &l.UpdatedAt}
}

// ListLessons 後台使用，包含未發佈單元
func ListLessons(ctx context.Context, db database.Querier, courseID int) ([]model.Lesson, error) {
	rows, err := db.Query(ctx,
		`SELECT `+lessonColumns+` FROM course_lessons WHERE course_id = $1 ORDER BY position, id`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLessons: %w", err)
	}
	lessons, err := collectAll(rows, lessonDest)
	if err != nil {
		return nil, fmt.Errorf("ListLessons: %w", err)
	}
	return lessons, nil
}

// ListLessonOutline 只回傳已發佈單元，不含內容與影片
func ListLessonOutline(ctx context.Context, db database.Querier, courseID int) ([]model.Lesson, error) {
	rows, err := db.Query(ctx,
		`SELECT id, course_id, title, '', '', duration_minutes, position, is_preview, is_published, created_at, updated_at
		 FROM course_lessons
		 WHERE course_id = $1 AND is_published
		 ORDER BY position, id`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLessonOutline: %w", err)
	}
	lessons, err := collectAll(rows, lessonDest)
	if err != nil {
		return nil, fmt.Errorf("ListLessonOutline: %w", err)
	}
	return lessons, nil
}

// GetLesson 單元必須屬於該課程
func GetLesson(ctx context.Context, db database.Querier, courseID, lessonID int) (*model.Lesson, error) {
	l := &model.Lesson{}
	if err := db.QueryRow(ctx,
		`SELECT `+lessonColumns+` FROM course_lessons WHERE id = $1 AND course_id = $2`,
		lessonID, courseID,
	).Scan(lessonDest(l)...); err != nil {
		return nil, fmt.Errorf("GetLesson: %w", err)
	}
	return l, nil
}

func CreateLesson(ctx context.Context, db database.Querier, l *model.Lesson) (*model.Lesson, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO course_lessons (course_id, title, content, video_url, duration_minutes, position, is_preview, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		l.CourseID, l.Title, l.Content, l.VideoURL, l.DurationMinutes, l.Position, l.IsPreview, l.IsPublished,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateLesson: %w", err)
	}
	return l, nil
}

func UpdateLesson(ctx context.Context, db database.Querier, l *model.Lesson) error {
	if err := db.QueryRow(ctx,
		`UPDATE course_lessons
		 SET title = $1, content = $2, video_url = $3, duration_minutes = $4, position = $5,
		     is_preview = $6, is_published = $7, updated_at = now()
		 WHERE id = $8 AND course_id = $9
		 RETURNING created_at, updated_at`,
		l.Title, l.Content, l.VideoURL, l.DurationMinutes, l.Position, l.IsPreview, l.IsPublished, l.ID, l.CourseID,
	).Scan(&l.CreatedAt, &l.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateLesson: %w", err)
	}
	return nil
}

func DeleteLesson(ctx context.Context, db database.Querier, courseID, lessonID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM course_lessons WHERE id = $1 AND course_id = $2`,
		lessonID, courseID,
	)
	return affected("DeleteLesson", tag, err)
}

func CountPublishedLessons(ctx context.Context, db database.Querier, courseID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_lessons WHERE course_id = $1 AND is_published`,
		courseID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountPublishedLessons: %w", err)
	}
	return n, nil
}

// MarkLessonComplete 重複完成同一單元不會新增紀錄
func MarkLessonComplete(ctx context.Context, db database.Querier, userID, courseID, lessonID int) error {
	if _, err := db.Exec(ctx,
		`INSERT INTO lesson_progress (user_id, lesson_id, course_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, lesson_id) DO NOTHING`,
		userID, lessonID, courseID,
	); err != nil {
		return fmt.Errorf("MarkLessonComplete: %w", err)
	}
	return nil
}

// CountCompletedLessons 只計算目前仍發佈中的單元
func CountCompletedLessons(ctx context.Context, db database.Querier, userID, courseID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM lesson_progress lp
		 JOIN course_lessons l ON l.id = lp.lesson_id
		 WHERE lp.user_id = $1 AND lp.course_id = $2 AND l.is_published`,
		userID, courseID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountCompletedLessons: %w", err)
	}
	return n, nil
}
