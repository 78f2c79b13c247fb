// File: internal/store/quotation.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

const quotationSelect = `SELECT q.id, q.service_id, q.name, q.email, q.phone, q.budget, q.message, q.status,
        q.created_at, q.updated_at, s.title
 FROM quotations q
 LEFT JOIN services s ON s.id = q.service_id`

func quotationDest(q *model.Quotation) []any {
	return []any{&q.ID, &q.ServiceID, &q.Name, &q.Email, &q.Phone, &q.Budget, &q.Message, &q.Status,
		&q.CreatedAt, &q.UpdatedAt, &q.ServiceTitle}
}

// CreateQuotation 不存在的 service_id 會觸發外鍵錯誤
func CreateQuotation(ctx context.Context, db database.Querier, q *model.Quotation) (*model.Quotation, error) {
	if err := db.QueryRow(ctx,
		`INSERT INTO quotations (service_id, name, email, phone, budget, message)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at, updated_at`,
		q.ServiceID, q.Name, q.Email, q.Phone, q.Budget, q.Message,
	).Scan(&q.ID, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateQuotation: %w", err)
	}
	return q, nil
}

func ListQuotations(ctx context.Context, db database.Querier, status string, p ListParams) ([]model.Quotation, int, error) {
	rows, err := db.Query(ctx,
		`SELECT q.id, q.service_id, q.name, q.email, q.phone, q.budget, q.message, q.status,
		        q.created_at, q.updated_at, s.title, COUNT(*) OVER()
		 FROM quotations q
		 LEFT JOIN services s ON s.id = q.service_id
		 WHERE ($1 = '' OR q.status = $1)
		   AND ($2 = '' OR q.name ILIKE '%' || $2 || '%' OR q.email ILIKE '%' || $2 || '%')
		 ORDER BY q.created_at DESC, q.id DESC
		 LIMIT $3 OFFSET $4`,
		status, p.Query, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListQuotations: %w", err)
	}
	list, total, err := collectPage(rows, quotationDest)
	if err != nil {
		return nil, 0, fmt.Errorf("ListQuotations: %w", err)
	}
	return list, total, nil
}

func GetQuotation(ctx context.Context, db database.Querier, id int) (*model.Quotation, error) {
	q := &model.Quotation{}
	if err := db.QueryRow(ctx,
		quotationSelect+` WHERE q.id = $1`,
		id,
	).Scan(quotationDest(q)...); err != nil {
		return nil, fmt.Errorf("GetQuotation: %w", err)
	}
	return q, nil
}

func UpdateQuotationStatus(ctx context.Context, db database.Querier, id int, status string) error {
	tag, err := db.Exec(ctx,
		`UPDATE quotations SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	return affected("UpdateQuotationStatus", tag, err)
}

func DeleteQuotation(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	return affected("DeleteQuotation", tag, err)
}
