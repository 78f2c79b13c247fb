// File: internal/model/certificate.go
package model

import "time"

type Certificate struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	CourseID  int        `db:"course_id" json:"course_id"`
	Number    string     `db:"certificate_number" json:"certificate_number"`
	IssuedAt  time.Time  `db:"issued_at" json:"issued_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at"`

	CourseTitle string `json:"course_title,omitempty"`
	UserName    string `json:"user_name,omitempty"`
}
