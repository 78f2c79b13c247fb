// File: internal/store/portfolio.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

/* ---------- skills ---------- */

func skillDest(s *model.Skill) []any {
	return []any{&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.Icon, &s.Position, &s.IsActive, &s.CreatedAt, &s.UpdatedAt}
}

// ListSkills activeOnly 為 true 時只列出啟用中的技能
func ListSkills(ctx context.Context, db database.Querier, activeOnly bool) ([]model.Skill, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, category, proficiency, icon, position, is_active, created_at, updated_at
		 FROM skills WHERE ($1 = FALSE OR is_active)
		 ORDER BY position, id`,
		activeOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("ListSkills: %w", err)
	}
	list, err := collectAll(rows, skillDest)
	if err != nil {
		return nil, fmt.Errorf("ListSkills: %w", err)
	}
	return list, nil
}

func CreateSkill(ctx context.Context, db database.Querier, s *model.Skill) (*model.Skill, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO skills (name, category, proficiency, icon, position, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Category, s.Proficiency, s.Icon, s.Position, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateSkill: %w", err)
	}
	return s, nil
}

func UpdateSkill(ctx context.Context, db database.Querier, s *model.Skill) error {
	if err := db.QueryRow(ctx,
		`UPDATE skills
		 SET name = $1, category = $2, proficiency = $3, icon = $4, position = $5, is_active = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING created_at, updated_at`,
		s.Name, s.Category, s.Proficiency, s.Icon, s.Position, s.IsActive, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateSkill: %w", err)
	}
	return nil
}

func DeleteSkill(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	return affected("DeleteSkill", tag, err)
}

/* ---------- companies ---------- */

func companyDest(c *model.Company) []any {
	return []any{&c.ID, &c.Name, &c.Role, &c.LogoURL, &c.WebsiteURL, &c.Description, &c.StartedOn, &c.EndedOn,
		&c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt}
}

func ListCompanies(ctx context.Context, db database.Querier, activeOnly bool) ([]model.Company, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, role, logo_url, website_url, description, started_on, ended_on, position, is_active, created_at, updated_at
		 FROM companies WHERE ($1 = FALSE OR is_active)
		 ORDER BY position, id`,
		activeOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCompanies: %w", err)
	}
	list, err := collectAll(rows, companyDest)
	if err != nil {
		return nil, fmt.Errorf("ListCompanies: %w", err)
	}
	return list, nil
}

func CreateCompany(ctx context.Context, db database.Querier, c *model.Company) (*model.Company, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO companies (name, role, logo_url, website_url, description, started_on, ended_on, position, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Role, c.LogoURL, c.WebsiteURL, c.Description, c.StartedOn, c.EndedOn, c.Position, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateCompany: %w", err)
	}
	return c, nil
}

func UpdateCompany(ctx context.Context, db database.Querier, c *model.Company) error {
	if err := db.QueryRow(ctx,
		`UPDATE companies
		 SET name = $1, role = $2, logo_url = $3, website_url = $4, description = $5,
		     started_on = $6, ended_on = $7, position = $8, is_active = $9, updated_at = now()
		 WHERE id = $10
		 RETURNING created_at, updated_at`,
		c.Name, c.Role, c.LogoURL, c.WebsiteURL, c.Description, c.StartedOn, c.EndedOn, c.Position, c.IsActive, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateCompany: %w", err)
	}
	return nil
}

func DeleteCompany(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return affected("DeleteCompany", tag, err)
}

/* ---------- projects ---------- */

const projectColumns = `id, company_id, title, slug, summary, description, image_url, project_url, repo_url, tech_stack,
 is_featured, is_published, position, created_at, updated_at`

func projectDest(p *model.Project) []any {
	return []any{&p.ID, &p.CompanyID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.ImageURL, &p.ProjectURL, &p.RepoURL, &p.TechStack,
		&p.IsFeatured, &p.IsPublished, &p.Position, &p.CreatedAt, &p.UpdatedAt}
}

// ListProjects publishedOnly 為 true 時只列出已發佈作品
func ListProjects(ctx context.Context, db database.Querier, publishedOnly bool) ([]model.Project, error) {
	rows, err := db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE ($1 = FALSE OR is_published) ORDER BY position, id`,
		publishedOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	list, err := collectAll(rows, projectDest)
	if err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	return list, nil
}

func GetPublishedProjectBySlug(ctx context.Context, db database.Querier, slug string) (*model.Project, error) {
	p := &model.Project{}
	if err := db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE slug = $1 AND is_published`,
		slug,
	).Scan(projectDest(p)...); err != nil {
		return nil, fmt.Errorf("GetPublishedProjectBySlug: %w", err)
	}
	return p, nil
}

func CreateProject(ctx context.Context, db database.Querier, p *model.Project) (*model.Project, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO projects (company_id, title, slug, summary, description, image_url, project_url, repo_url, tech_stack,
		                       is_featured, is_published, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		p.CompanyID, p.Title, p.Slug, p.Summary, p.Description, p.ImageURL, p.ProjectURL, p.RepoURL, p.TechStack,
		p.IsFeatured, p.IsPublished, p.Position,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateProject: %w", err)
	}
	return p, nil
}

func UpdateProject(ctx context.Context, db database.Querier, p *model.Project) error {
	if err := db.QueryRow(ctx,
		`UPDATE projects
		 SET company_id = $1, title = $2, slug = $3, summary = $4, description = $5, image_url = $6,
		     project_url = $7, repo_url = $8, tech_stack = $9, is_featured = $10, is_published = $11,
		     position = $12, updated_at = now()
		 WHERE id = $13
		 RETURNING created_at, updated_at`,
		p.CompanyID, p.Title, p.Slug, p.Summary, p.Description, p.ImageURL, p.ProjectURL, p.RepoURL, p.TechStack,
		p.IsFeatured, p.IsPublished, p.Position, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateProject: %w", err)
	}
	return nil
}

func DeleteProject(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return affected("DeleteProject", tag, err)
}

/* ---------- services ---------- */

func serviceDest(s *model.Service) []any {
	return []any{&s.ID, &s.Title, &s.Slug, &s.Description, &s.Icon, &s.PriceFromCents, &s.Position, &s.IsActive, &s.CreatedAt, &s.UpdatedAt}
}

func ListServices(ctx context.Context, db database.Querier, activeOnly bool) ([]model.Service, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, slug, description, icon, price_from_cents, position, is_active, created_at, updated_at
		 FROM services WHERE ($1 = FALSE OR is_active)
		 ORDER BY position, id`,
		activeOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("ListServices: %w", err)
	}
	list, err := collectAll(rows, serviceDest)
	if err != nil {
		return nil, fmt.Errorf("ListServices: %w", err)
	}
	return list, nil
}

func CreateService(ctx context.Context, db database.Querier, s *model.Service) (*model.Service, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO services (title, slug, description, icon, price_from_cents, position, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		s.Title, s.Slug, s.Description, s.Icon, s.PriceFromCents, s.Position, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateService: %w", err)
	}
	return s, nil
}

func UpdateService(ctx context.Context, db database.Querier, s *model.Service) error {
	if err := db.QueryRow(ctx,
		`UPDATE services
		 SET title = $1, slug = $2, description = $3, icon = $4, price_from_cents = $5, position = $6,
		     is_active = $7, updated_at = now()
		 WHERE id = $8
		 RETURNING created_at, updated_at`,
		s.Title, s.Slug, s.Description, s.Icon, s.PriceFromCents, s.Position, s.IsActive, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateService: %w", err)
	}
	return nil
}

func DeleteService(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return affected("DeleteService", tag, err)
}
