// File: internal/service/errors.go
package service

import "errors"

// 商業規則錯誤，handler 轉為 400/401/403
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInactiveUser         = errors.New("user is inactive")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientBalance  = errors.New("insufficient wallet balance")
	ErrDuplicateReference   = errors.New("payment reference already used")
	ErrCourseNotPurchasable = errors.New("course is free and cannot be purchased")
	ErrCourseNotFree        = errors.New("course requires purchase")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrNotEnrolled          = errors.New("not enrolled in this course")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrInvalidSettingKey    = errors.New("invalid setting key")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
)
