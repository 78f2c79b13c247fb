// File: internal/service/account.go
package service

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	createUser   = store.CreateUser
	ensureWallet = store.EnsureWallet
)

// RegisterUser 在同一交易內建立使用者與空錢包
func RegisterUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	var created *model.User
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		var err error
		if created, err = createUser(ctx, tx, u); err != nil {
			return err
		}
		return ensureWallet(ctx, tx, created.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("RegisterUser: %w", err)
	}
	return created, nil
}
