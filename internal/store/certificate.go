// File: internal/store/certificate.go
package store

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const certificateColumns = `id, user_id, course_id, certificate_number, issued_at, revoked_at`

func certificateDest(c *model.Certificate) []any {
	return []any{&c.ID, &c.UserID, &c.CourseID, &c.Number, &c.IssuedAt, &c.RevokedAt}
}

func certificateJoinDest(c *model.Certificate) []any {
	return append(certificateDest(c), &c.CourseTitle, &c.UserName)
}

const certificateJoin = `SELECT ce.id, ce.user_id, ce.course_id, ce.certificate_number, ce.issued_at, ce.revoked_at,
        co.title, u.name
 FROM certificates ce
 JOIN courses co ON co.id = ce.course_id
 JOIN users u ON u.id = ce.user_id`

// CreateCertificate 每位使用者每門課只會有一張證書；已存在時回傳既有證書
func CreateCertificate(ctx context.Context, db database.Querier, userID, courseID int, number string) (*model.Certificate, error) {
	c := &model.Certificate{}
	err := db.QueryRow(ctx,
		`INSERT INTO certificates (user_id, course_id, certificate_number)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, course_id) DO NOTHING
		 RETURNING `+certificateColumns,
		userID, courseID, number,
	).Scan(certificateDest(c)...)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("CreateCertificate: %w", err)
	}
	existing, err := GetCertificateForCourse(ctx, db, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("CreateCertificate: %w", err)
	}
	return existing, nil
}

func GetCertificateForCourse(ctx context.Context, db database.Querier, userID, courseID int) (*model.Certificate, error) {
	c := &model.Certificate{}
	if err := db.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(certificateDest(c)...); err != nil {
		return nil, fmt.Errorf("GetCertificateForCourse: %w", err)
	}
	return c, nil
}

// GetCertificateByNumber 公開驗證用，已撤銷的證書仍會回傳
func GetCertificateByNumber(ctx context.Context, db database.Querier, number string) (*model.Certificate, error) {
	c := &model.Certificate{}
	if err := db.QueryRow(ctx,
		certificateJoin+` WHERE ce.certificate_number = $1`,
		number,
	).Scan(certificateJoinDest(c)...); err != nil {
		return nil, fmt.Errorf("GetCertificateByNumber: %w", err)
	}
	return c, nil
}

func ListUserCertificates(ctx context.Context, db database.Querier, userID int) ([]model.Certificate, error) {
	rows, err := db.Query(ctx,
		certificateJoin+` WHERE ce.user_id = $1 ORDER BY ce.issued_at DESC, ce.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUserCertificates: %w", err)
	}
	list, err := collectAll(rows, certificateJoinDest)
	if err != nil {
		return nil, fmt.Errorf("ListUserCertificates: %w", err)
	}
	return list, nil
}

func ListCertificates(ctx context.Context, db database.Querier, p ListParams) ([]model.Certificate, int, error) {
	rows, err := db.Query(ctx,
		`SELECT ce.id, ce.user_id, ce.course_id, ce.certificate_number, ce.issued_at, ce.revoked_at,
		        co.title, u.name, COUNT(*) OVER()
		 FROM certificates ce
		 JOIN courses co ON co.id = ce.course_id
		 JOIN users u ON u.id = ce.user_id
		 WHERE ($1 = '' OR ce.certificate_number ILIKE '%' || $1 || '%' OR u.name ILIKE '%' || $1 || '%')
		 ORDER BY ce.issued_at DESC, ce.id DESC
		 LIMIT $2 OFFSET $3`,
		p.Query, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListCertificates: %w", err)
	}
	list, total, err := collectPage(rows, certificateJoinDest)
	if err != nil {
		return nil, 0, fmt.Errorf("ListCertificates: %w", err)
	}
	return list, total, nil
}

// RevokeCertificate 重複撤銷保留第一次的時間
func RevokeCertificate(ctx context.Context, db database.Querier, id int) (*model.Certificate, error) {
	c := &model.Certificate{}
	if err := db.QueryRow(ctx,
		`UPDATE certificates SET revoked_at = COALESCE(revoked_at, now())
		 WHERE id = $1
		 RETURNING `+certificateColumns,
		id,
	).Scan(certificateDest(c)...); err != nil {
		return nil, fmt.Errorf("RevokeCertificate: %w", err)
	}
	return c, nil
}
