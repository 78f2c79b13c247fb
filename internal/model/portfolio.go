// File: internal/model/portfolio.go
package model

import "time"

type Skill struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	Proficiency int       `db:"proficiency" json:"proficiency"`
	Icon        string    `db:"icon" json:"icon"`
	Position    int       `db:"position" json:"position"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Company 是工作經歷；StartedOn/EndedOn 只保留日期
type Company struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Role        string     `db:"role" json:"role"`
	LogoURL     string     `db:"logo_url" json:"logo_url"`
	WebsiteURL  string     `db:"website_url" json:"website_url"`
	Description string     `db:"description" json:"description"`
	StartedOn   *time.Time `db:"started_on" json:"started_on"`
	EndedOn     *time.Time `db:"ended_on" json:"ended_on"`
	Position    int        `db:"position" json:"position"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

type Project struct {
	ID          int       `db:"id" json:"id"`
	CompanyID   *int      `db:"company_id" json:"company_id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Summary     string    `db:"summary" json:"summary"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	ProjectURL  string    `db:"project_url" json:"project_url"`
	RepoURL     string    `db:"repo_url" json:"repo_url"`
	TechStack   []string  `db:"tech_stack" json:"tech_stack"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	Position    int       `db:"position" json:"position"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Service struct {
	ID             int       `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Slug           string    `db:"slug" json:"slug"`
	Description    string    `db:"description" json:"description"`
	Icon           string    `db:"icon" json:"icon"`
	PriceFromCents int64     `db:"price_from_cents" json:"price_from_cents"`
	Position       int       `db:"position" json:"position"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
