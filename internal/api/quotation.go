// File: internal/api/quotation.go
package api

// swagger:model api.QuotationRequest
type QuotationRequest struct {
	Name      string `json:"name" validate:"required,max=100" example:"Carol"`
	Email     string `json:"email" validate:"required,email,max=255" example:"carol@example.com"`
	Phone     string `json:"phone" validate:"max=50" example:"+886912345678"`
	ServiceID *int   `json:"service_id" validate:"omitempty,gt=0" example:"2"`
	Budget    string `json:"budget" validate:"max=100" example:"NT$100k-200k"`
	Message   string `json:"message" validate:"required,max=5000" example:"We need a booking system"`
}

// swagger:model api.QuotationStatusRequest
type QuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted accepted rejected" example:"contacted"`
}
