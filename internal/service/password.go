// File: internal/service/password.go
package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 只處理前 72 bytes，多位元組字元可能讓 72 字元的密碼超過上限
const maxPasswordBytes = 72

var (
	passwordCost                 = bcrypt.DefaultCost
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 回傳 bcrypt 雜湊
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcryptGenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("HashPassword: %w", err)
	}
	return string(hash), nil
}

// ComparePassword 密碼不符時回傳 ErrInvalidCredentials
func ComparePassword(hash, password string) error {
	err := bcryptCompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("ComparePassword: %w", err)
	}
}
