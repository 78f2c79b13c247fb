// File: internal/store/user.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

const userColumns = `id, name, email, password_hash, is_admin, is_super_admin, is_active, created_at, updated_at`

func userDest(u *model.User) []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.IsSuperAdmin, &u.IsActive, &u.CreatedAt, &u.UpdatedAt}
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	).Scan(userDest(u)...)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// GetUserByEmail email 以小寫儲存
func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	).Scan(userDest(u)...)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	err := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, is_admin, is_super_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_active, created_at, updated_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.IsSuperAdmin,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// ListUsers 依姓名或 email 模糊搜尋
func ListUsers(ctx context.Context, db database.Querier, p ListParams) ([]model.User, int, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`, COUNT(*) OVER()
		 FROM users
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		 ORDER BY id
		 LIMIT $2 OFFSET $3`,
		p.Query, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	users, total, err := collectPage(rows, userDest)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	return users, total, nil
}

// UpdateUser 更新姓名、email 與啟用狀態；角色另由 UpdateUserRoles 處理
func UpdateUser(ctx context.Context, db database.Querier, u *model.User) error {
	err := db.QueryRow(ctx,
		`UPDATE users SET name = $1, email = $2, is_active = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING updated_at`,
		u.Name,
		u.Email,
		u.IsActive,
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	return nil
}

func UpdateUserRoles(ctx context.Context, db database.Querier, userID int, isAdmin, isSuperAdmin bool) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET is_admin = $1, is_super_admin = $2, updated_at = now()
		 WHERE id = $3`,
		isAdmin,
		isSuperAdmin,
		userID,
	)
	return affected("UpdateUserRoles", tag, err)
}

func UpdateUserPassword(ctx context.Context, db database.Querier, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = now()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	return affected("UpdateUserPassword", tag, err)
}

func DeleteUser(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	return affected("DeleteUser", tag, err)
}
