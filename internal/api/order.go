// File: internal/api/order.go
package api

// swagger:model api.CreateOrderRequest
type CreateOrderRequest struct {
	CourseID      int    `json:"course_id" validate:"required,gt=0" example:"3"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=wallet manual" example:"wallet"`
}

// swagger:model api.OrderStatusRequest
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid cancelled refunded" example:"paid"`
}
