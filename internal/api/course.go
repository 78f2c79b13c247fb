// File: internal/api/course.go
package api

import "portfolio-api/internal/model"

// swagger:model api.CourseRequest
type CourseRequest struct {
	Title        string `json:"title" validate:"required,max=200" example:"Go for Backend Engineers"`
	Slug         string `json:"slug" validate:"omitempty,max=200" example:"go-for-backend-engineers"`
	Summary      string `json:"summary" validate:"max=500" example:"From zero to production services"`
	Description  string `json:"description" example:"..."`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url" example:"https://cdn.example.com/go.png"`
	PriceCents   int64  `json:"price_cents" validate:"min=0" example:"199000"`
	Level        string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced" example:"beginner"`
	IsPublished  bool   `json:"is_published" example:"true"`
}

// swagger:model api.LessonRequest
type LessonRequest struct {
	Title           string `json:"title" validate:"required,max=200" example:"Goroutines"`
	Content         string `json:"content" example:"..."`
	VideoURL        string `json:"video_url" validate:"omitempty,url" example:"https://videos.example.com/1"`
	DurationMinutes int    `json:"duration_minutes" validate:"min=0" example:"12"`
	Position        int    `json:"position" validate:"min=0" example:"1"`
	IsPreview       bool   `json:"is_preview" example:"false"`
	IsPublished     bool   `json:"is_published" example:"true"`
}

// CompleteLessonResponse certificate 只在課程完成時出現
// swagger:model api.CompleteLessonResponse
type CompleteLessonResponse struct {
	Enrollment  *model.Enrollment  `json:"enrollment"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
}
