// File: internal/store/setting.go
package store

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
)

func ListSettings(ctx context.Context, db database.Querier) (model.Settings, error) {
	rows, err := db.Query(ctx, `SELECT key, value FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("ListSettings: %w", err)
	}
	defer rows.Close()

	out := model.Settings{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("ListSettings: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListSettings: %w", err)
	}
	return out, nil
}

func UpsertSetting(ctx context.Context, db database.Querier, key, value string) error {
	if _, err := db.Exec(ctx,
		`INSERT INTO site_settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	); err != nil {
		return fmt.Errorf("UpsertSetting: %w", err)
	}
	return nil
}
