// File: internal/store/store.go
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ListParams 是列表查詢共用的分頁與關鍵字
type ListParams struct {
	Limit  int
	Offset int
	Query  string
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation 判斷是否違反唯一約束 (email、slug、付款參考碼等)
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

// IsForeignKeyViolation 判斷是否參照不存在或仍被參照的資料
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation)
}

// IsCheckViolation 判斷是否違反 CHECK 約束
func IsCheckViolation(err error) bool {
	return hasCode(err, pgCheckViolation)
}

// IsNotFound 查無資料或更新/刪除影響 0 筆
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// affected 把影響 0 筆視為 pgx.ErrNoRows
func affected(fn string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", fn, pgx.ErrNoRows)
	}
	return nil
}

// collectPage 掃描帶有 COUNT(*) OVER() 尾欄的結果集
func collectPage[T any](rows pgx.Rows, dest func(*T) []any) ([]T, int, error) {
	defer rows.Close()
	out := []T{}
	total := 0
	for rows.Next() {
		var v T
		if err := rows.Scan(append(dest(&v), &total)...); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func collectAll[T any](rows pgx.Rows, dest func(*T) []any) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var v T
		if err := rows.Scan(dest(&v)...); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
