// File: internal/model/blog.go
package model

import "time"

type BlogCategory struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	PostCount   int       `json:"post_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type BlogPost struct {
	ID            int        `db:"id" json:"id"`
	CategoryID    *int       `db:"category_id" json:"category_id"`
	AuthorID      *int       `db:"author_id" json:"author_id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Excerpt       string     `db:"excerpt" json:"excerpt"`
	Content       string     `db:"content" json:"content,omitempty"`
	CoverImageURL string     `db:"cover_image_url" json:"cover_image_url"`
	IsPublished   bool       `db:"is_published" json:"is_published"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at"`
	ViewCount     int        `db:"view_count" json:"view_count"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	CategoryName *string `json:"category_name,omitempty"`
	AuthorName   *string `json:"author_name,omitempty"`
}
