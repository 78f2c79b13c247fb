// File: internal/store/blog.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

// BlogPostFilter 公開列表只看已發佈文章
type BlogPostFilter struct {
	PublishedOnly bool
	CategorySlug  string
}

const blogPostSelect = `SELECT p.id, p.category_id, p.author_id, p.title, p.slug, p.excerpt, p.content, p.cover_image_url,
        p.is_published, p.published_at, p.view_count, p.created_at, p.updated_at, c.name, u.name
 FROM blog_posts p
 LEFT JOIN blog_categories c ON c.id = p.category_id
 LEFT JOIN users u ON u.id = p.author_id`

func blogPostDest(p *model.BlogPost) []any {
	return []any{&p.ID, &p.CategoryID, &p.AuthorID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImageURL,
		&p.IsPublished, &p.PublishedAt, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.AuthorName}
}

// ListBlogPosts 列表不含內文；依發佈時間新到舊
func ListBlogPosts(ctx context.Context, db database.Querier, f BlogPostFilter, p ListParams) ([]model.BlogPost, int, error) {
	rows, err := db.Query(ctx,
		`SELECT p.id, p.category_id, p.author_id, p.title, p.slug, p.excerpt, '', p.cover_image_url,
		        p.is_published, p.published_at, p.view_count, p.created_at, p.updated_at, c.name, u.name,
		        COUNT(*) OVER()
		 FROM blog_posts p
		 LEFT JOIN blog_categories c ON c.id = p.category_id
		 LEFT JOIN users u ON u.id = p.author_id
		 WHERE ($1 = FALSE OR p.is_published)
		   AND ($2 = '' OR c.slug = $2)
		   AND ($3 = '' OR p.title ILIKE '%' || $3 || '%' OR p.excerpt ILIKE '%' || $3 || '%')
		 ORDER BY p.published_at DESC NULLS LAST, p.id DESC
		 LIMIT $4 OFFSET $5`,
		f.PublishedOnly, f.CategorySlug, p.Query, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListBlogPosts: %w", err)
	}
	list, total, err := collectPage(rows, blogPostDest)
	if err != nil {
		return nil, 0, fmt.Errorf("ListBlogPosts: %w", err)
	}
	return list, total, nil
}

func GetPublishedBlogPost(ctx context.Context, db database.Querier, slug string) (*model.BlogPost, error) {
	p := &model.BlogPost{}
	if err := db.QueryRow(ctx,
		blogPostSelect+` WHERE p.slug = $1 AND p.is_published`,
		slug,
	).Scan(blogPostDest(p)...); err != nil {
		return nil, fmt.Errorf("GetPublishedBlogPost: %w", err)
	}
	return p, nil
}

func GetBlogPostByID(ctx context.Context, db database.Querier, id int) (*model.BlogPost, error) {
	p := &model.BlogPost{}
	if err := db.QueryRow(ctx,
		blogPostSelect+` WHERE p.id = $1`,
		id,
	).Scan(blogPostDest(p)...); err != nil {
		return nil, fmt.Errorf("GetBlogPostByID: %w", err)
	}
	return p, nil
}

func CreateBlogPost(ctx context.Context, db database.Querier, p *model.BlogPost) (*model.BlogPost, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO blog_posts (category_id, author_id, title, slug, excerpt, content, cover_image_url, is_published, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $8 THEN now() END)
		 RETURNING id, published_at, view_count, created_at, updated_at`,
		p.CategoryID, p.AuthorID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImageURL, p.IsPublished,
	).Scan(&p.ID, &p.PublishedAt, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateBlogPost: %w", err)
	}
	return p, nil
}

// UpdateBlogPost published_at 只在第一次發佈時寫入
func UpdateBlogPost(ctx context.Context, db database.Querier, p *model.BlogPost) error {
	if err := db.QueryRow(ctx,
		`UPDATE blog_posts
		 SET category_id = $1, title = $2, slug = $3, excerpt = $4, content = $5, cover_image_url = $6,
		     is_published = $7,
		     published_at = CASE WHEN $7 AND published_at IS NULL THEN now() ELSE published_at END,
		     updated_at = now()
		 WHERE id = $8
		 RETURNING author_id, published_at, view_count, created_at, updated_at`,
		p.CategoryID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImageURL, p.IsPublished, p.ID,
	).Scan(&p.AuthorID, &p.PublishedAt, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateBlogPost: %w", err)
	}
	return nil
}

func DeleteBlogPost(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return affected("DeleteBlogPost", tag, err)
}

func IncrementBlogPostViews(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `UPDATE blog_posts SET view_count = view_count + 1 WHERE id = $1`, id)
	return affected("IncrementBlogPostViews", tag, err)
}

// ListBlogCategories post_count 只計算已發佈文章
func ListBlogCategories(ctx context.Context, db database.Querier) ([]model.BlogCategory, error) {
	rows, err := db.Query(ctx,
		`SELECT c.id, c.name, c.slug, c.description, c.created_at,
		        COUNT(p.id) FILTER (WHERE p.is_published)
		 FROM blog_categories c
		 LEFT JOIN blog_posts p ON p.category_id = c.id
		 GROUP BY c.id
		 ORDER BY c.name, c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBlogCategories: %w", err)
	}
	list, err := collectAll(rows, func(c *model.BlogCategory) []any {
		return []any{&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.PostCount}
	})
	if err != nil {
		return nil, fmt.Errorf("ListBlogCategories: %w", err)
	}
	return list, nil
}

func CreateBlogCategory(ctx context.Context, db database.Querier, c *model.BlogCategory) (*model.BlogCategory, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO blog_categories (name, slug, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.Name, c.Slug, c.Description,
	).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateBlogCategory: %w", err)
	}
	return c, nil
}

func UpdateBlogCategory(ctx context.Context, db database.Querier, c *model.BlogCategory) error {
	if err := db.QueryRow(ctx,
		`UPDATE blog_categories SET name = $1, slug = $2, description = $3
		 WHERE id = $4
		 RETURNING created_at`,
		c.Name, c.Slug, c.Description, c.ID,
	).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("UpdateBlogCategory: %w", err)
	}
	return nil
}

// DeleteBlogCategory 文章的 category_id 由外鍵設為 NULL
func DeleteBlogCategory(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	return affected("DeleteBlogCategory", tag, err)
}
