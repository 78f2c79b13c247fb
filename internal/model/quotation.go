// File: internal/model/quotation.go
package model

import "time"

const (
	QuotationNew       = "new"
	QuotationContacted = "contacted"
	QuotationAccepted  = "accepted"
	QuotationRejected  = "rejected"
)

type Quotation struct {
	ID        int       `db:"id" json:"id"`
	ServiceID *int      `db:"service_id" json:"service_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Budget    string    `db:"budget" json:"budget"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	ServiceTitle *string `json:"service_title,omitempty"`
}
