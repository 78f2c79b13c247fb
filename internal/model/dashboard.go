// File: internal/model/dashboard.go
package model

// DashboardStats 為後台首頁統計
type DashboardStats struct {
	Users                int   `json:"users"`
	Courses              int   `json:"courses"`
	PublishedCourses     int   `json:"published_courses"`
	Enrollments          int   `json:"enrollments"`
	CompletedEnrollments int   `json:"completed_enrollments"`
	PaidOrders           int   `json:"paid_orders"`
	RevenueCents         int64 `json:"revenue_cents"`
	RevenueTodayCents    int64 `json:"revenue_today_cents"`
	PendingQuotations    int   `json:"pending_quotations"`
}
