// File: internal/model/course.go
package model

import "time"

type Course struct {
	ID           int       `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Slug         string    `db:"slug" json:"slug"`
	Summary      string    `db:"summary" json:"summary"`
	Description  string    `db:"description" json:"description"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	Level        string    `db:"level" json:"level"`
	IsPublished  bool      `db:"is_published" json:"is_published"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsFree 價格為 0 的課程可直接報名
func (c Course) IsFree() bool {
	return c.PriceCents == 0
}

// Lesson 為課程單元；大綱查詢時 Content 與 VideoURL 為空
type Lesson struct {
	ID              int       `db:"id" json:"id"`
	CourseID        int       `db:"course_id" json:"course_id"`
	Title           string    `db:"title" json:"title"`
	Content         string    `db:"content" json:"content,omitempty"`
	VideoURL        string    `db:"video_url" json:"video_url,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Position        int       `db:"position" json:"position"`
	IsPreview       bool      `db:"is_preview" json:"is_preview"`
	IsPublished     bool      `db:"is_published" json:"is_published"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// CourseDetail 是公開課程頁：課程本體加上已發佈單元大綱
type CourseDetail struct {
	Course
	Lessons []Lesson `json:"lessons"`
}
