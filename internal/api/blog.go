// File: internal/api/blog.go
package api

// swagger:model api.BlogPostRequest
type BlogPostRequest struct {
	Title         string `json:"title" validate:"required,max=200" example:"Shipping Go services"`
	Slug          string `json:"slug" validate:"omitempty,max=200" example:"shipping-go-services"`
	Excerpt       string `json:"excerpt" validate:"max=500" example:"Notes from production"`
	Content       string `json:"content" validate:"required" example:"..."`
	CoverImageURL string `json:"cover_image_url" validate:"omitempty,url" example:"https://cdn.example.com/cover.png"`
	CategoryID    *int   `json:"category_id" validate:"omitempty,gt=0" example:"1"`
	IsPublished   bool   `json:"is_published" example:"false"`
}

// swagger:model api.BlogCategoryRequest
type BlogCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100" example:"Backend"`
	Slug        string `json:"slug" validate:"omitempty,max=100" example:"backend"`
	Description string `json:"description" validate:"max=500" example:"Server side notes"`
}
