// File: internal/store/dashboard.go
package store

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

// GetDashboardStats 一次查詢取得後台統計；todayStart 為今日起點
func GetDashboardStats(ctx context.Context, db database.Querier, todayStart time.Time) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	if err := db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM courses),
		   (SELECT COUNT(*) FROM courses WHERE is_published),
		   (SELECT COUNT(*) FROM course_enrollments),
		   (SELECT COUNT(*) FROM course_enrollments WHERE status = 'completed'),
		   (SELECT COUNT(*) FROM orders WHERE status = 'paid'),
		   (SELECT COALESCE(SUM(amount_cents), 0) FROM orders WHERE status = 'paid'),
		   (SELECT COALESCE(SUM(amount_cents), 0) FROM orders WHERE status = 'paid' AND paid_at >= $1),
		   (SELECT COUNT(*) FROM quotations WHERE status = 'new')`,
		todayStart,
	).Scan(
		&s.Users,
		&s.Courses,
		&s.PublishedCourses,
		&s.Enrollments,
		&s.CompletedEnrollments,
		&s.PaidOrders,
		&s.RevenueCents,
		&s.RevenueTodayCents,
		&s.PendingQuotations,
	); err != nil {
		return nil, fmt.Errorf("GetDashboardStats: %w", err)
	}
	return s, nil
}
