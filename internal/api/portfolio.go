// File: internal/api/portfolio.go
package api

// swagger:model api.SkillRequest
type SkillRequest struct {
	Name        string `json:"name" validate:"required,max=100" example:"Go"`
	Category    string `json:"category" validate:"max=100" example:"backend"`
	Proficiency int    `json:"proficiency" validate:"min=0,max=100" example:"90"`
	Icon        string `json:"icon" validate:"max=200" example:"go"`
	Position    int    `json:"position" validate:"min=0" example:"1"`
	IsActive    bool   `json:"is_active" example:"true"`
}

// CompanyRequest 日期格式為 YYYY-MM-DD
// swagger:model api.CompanyRequest
type CompanyRequest struct {
	Name        string `json:"name" validate:"required,max=200" example:"Acme"`
	Role        string `json:"role" validate:"max=200" example:"Backend Engineer"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url" example:"https://cdn.example.com/acme.png"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url" example:"https://acme.example.com"`
	Description string `json:"description" example:"..."`
	StartedOn   string `json:"started_on" validate:"omitempty,datetime=2006-01-02" example:"2021-03-01"`
	EndedOn     string `json:"ended_on" validate:"omitempty,datetime=2006-01-02" example:"2023-08-31"`
	Position    int    `json:"position" validate:"min=0" example:"1"`
	IsActive    bool   `json:"is_active" example:"true"`
}

// swagger:model api.ProjectRequest
type ProjectRequest struct {
	CompanyID   *int     `json:"company_id" validate:"omitempty,gt=0" example:"1"`
	Title       string   `json:"title" validate:"required,max=200" example:"Payments platform"`
	Slug        string   `json:"slug" validate:"omitempty,max=200" example:"payments-platform"`
	Summary     string   `json:"summary" validate:"max=500" example:"Ledger and checkout"`
	Description string   `json:"description" example:"..."`
	ImageURL    string   `json:"image_url" validate:"omitempty,url" example:"https://cdn.example.com/p.png"`
	ProjectURL  string   `json:"project_url" validate:"omitempty,url" example:"https://pay.example.com"`
	RepoURL     string   `json:"repo_url" validate:"omitempty,url" example:"https://github.com/example/pay"`
	TechStack   []string `json:"tech_stack" validate:"dive,max=50" example:"go,postgres"`
	IsFeatured  bool     `json:"is_featured" example:"true"`
	IsPublished bool     `json:"is_published" example:"true"`
	Position    int      `json:"position" validate:"min=0" example:"1"`
}

// swagger:model api.ServiceRequest
type ServiceRequest struct {
	Title          string `json:"title" validate:"required,max=200" example:"API design review"`
	Slug           string `json:"slug" validate:"omitempty,max=200" example:"api-design-review"`
	Description    string `json:"description" example:"..."`
	Icon           string `json:"icon" validate:"max=200" example:"api"`
	PriceFromCents int64  `json:"price_from_cents" validate:"min=0" example:"3000000"`
	Position       int    `json:"position" validate:"min=0" example:"1"`
	IsActive       bool   `json:"is_active" example:"true"`
}
