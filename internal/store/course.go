// File: internal/store/course.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

const courseColumns = `id, title, slug, summary, description, thumbnail_url, price_cents, level, is_published, created_at, updated_at`

func courseDest(c *model.Course) []any {
	return []any{&c.ID, &c.Title, &c.Slug, &c.Summary, &c.Description, &c.ThumbnailURL, &c.PriceCents, &c.Level, &c.IsPublished, &c.CreatedAt, &c.UpdatedAt}
}

// ListCourses publishedOnly 為 true 時只列出已發佈課程
func ListCourses(ctx context.Context, db database.Querier, p ListParams, publishedOnly bool) ([]model.Course, int, error) {
	rows, err := db.Query(ctx,
		`SELECT `+courseColumns+`, COUNT(*) OVER()
		 FROM courses
		 WHERE ($1 = FALSE OR is_published)
		   AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR summary ILIKE '%' || $2 || '%')
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3 OFFSET $4`,
		publishedOnly, p.Query, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListCourses: %w", err)
	}
	courses, total, err := collectPage(rows, courseDest)
	if err != nil {
		return nil, 0, fmt.Errorf("ListCourses: %w", err)
	}
	return courses, total, nil
}

func GetCourseByID(ctx context.Context, db database.Querier, id int) (*model.Course, error) {
	c := &model.Course{}
	if err := db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`,
		id,
	).Scan(courseDest(c)...); err != nil {
		return nil, fmt.Errorf("GetCourseByID: %w", err)
	}
	return c, nil
}

// GetPublishedCourseBySlug 未發佈的課程視為不存在
func GetPublishedCourseBySlug(ctx context.Context, db database.Querier, slug string) (*model.Course, error) {
	c := &model.Course{}
	if err := db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE slug = $1 AND is_published`,
		slug,
	).Scan(courseDest(c)...); err != nil {
		return nil, fmt.Errorf("GetPublishedCourseBySlug: %w", err)
	}
	return c, nil
}

func CreateCourse(ctx context.Context, db database.Querier, c *model.Course) (*model.Course, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO courses (title, slug, summary, description, thumbnail_url, price_cents, level, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Slug, c.Summary, c.Description, c.ThumbnailURL, c.PriceCents, c.Level, c.IsPublished,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateCourse: %w", err)
	}
	return c, nil
}

func UpdateCourse(ctx context.Context, db database.Querier, c *model.Course) error {
	if err := db.QueryRow(ctx,
		`UPDATE courses
		 SET title = $1, slug = $2, summary = $3, description = $4, thumbnail_url = $5,
		     price_cents = $6, level = $7, is_published = $8, updated_at = now()
		 WHERE id = $9
		 RETURNING created_at, updated_at`,
		c.Title, c.Slug, c.Summary, c.Description, c.ThumbnailURL, c.PriceCents, c.Level, c.IsPublished, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateCourse: %w", err)
	}
	return nil
}

// DeleteCourse 仍有訂單的課程會觸發外鍵錯誤
func DeleteCourse(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return affected("DeleteCourse", tag, err)
}
