// File: internal/api/wallet.go
package api

// swagger:model api.DepositRequest
type DepositRequest struct {
	AmountCents      int64  `json:"amount_cents" validate:"required,gt=0" example:"50000"`
	PaymentGateway   string `json:"payment_gateway" validate:"required,max=50" example:"stripe"`
	PaymentReference string `json:"payment_reference" validate:"required,max=100" example:"pi_3NxYz"`
}

// AdjustmentRequest amount_cents 正數加值、負數扣款
// swagger:model api.AdjustmentRequest
type AdjustmentRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required" example:"-1000"`
	Reason      string `json:"reason" validate:"required,max=255" example:"manual correction"`
}
