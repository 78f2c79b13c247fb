package store

import (
	"context"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	want := model.User{ID: 1, Name: "Ann", Email: "ann@example.com", PasswordHash: "h", IsAdmin: true, IsActive: true, CreatedAt: now, UpdatedAt: now}

	u, err := GetUserByID(ctx, rowDB(database.FakeRow{Values: userValues(want)}), 1)
	require.NoError(t, err)
	require.Equal(t, want, *u)

	u, err = GetUserByEmail(ctx, rowDB(database.FakeRow{Values: userValues(want)}), "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", u.Name)

	_, err = GetUserByID(ctx, rowDB(database.FakeRow{Err: pgx.ErrNoRows}), 1)
	require.True(t, IsNotFound(err))
	require.ErrorContains(t, err, "GetUserByID")

	_, err = GetUserByEmail(ctx, rowDB(database.FakeRow{Err: errDB}), "x")
	require.ErrorIs(t, err, errDB)
}

func TestCreateUser(t *testing.T) {
	var gotArgs []any
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		gotArgs = args
		return database.FakeRow{Values: []any{9, true, now, now}}
	}}
	u, err := CreateUser(ctx, db, &model.User{Name: "a", Email: "a@b.c", PasswordHash: "h", IsAdmin: true})
	require.NoError(t, err)
	require.Equal(t, 9, u.ID)
	require.True(t, u.IsActive)
	require.Equal(t, []any{"a", "a@b.c", "h", true, false}, gotArgs)

	_, err = CreateUser(ctx, rowDB(database.FakeRow{Err: errDB}), &model.User{})
	require.ErrorIs(t, err, errDB)
}

func TestListUsers(t *testing.T) {
	a := model.User{ID: 1, Name: "a", CreatedAt: now, UpdatedAt: now}
	b := model.User{ID: 2, Name: "b", CreatedAt: now, UpdatedAt: now}
	rows := &database.FakeRows{Data: [][]any{append(userValues(a), 12), append(userValues(b), 12)}}

	users, total, err := ListUsers(ctx, queryDB(rows, nil), ListParams{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, users, 2)
	require.Equal(t, "b", users[1].Name)
	require.True(t, rows.Closed)

	_, _, err = ListUsers(ctx, queryDB(nil, errDB), ListParams{})
	require.ErrorIs(t, err, errDB)

	_, _, err = ListUsers(ctx, queryDB(&database.FakeRows{Data: [][]any{{1}}}, nil), ListParams{})
	require.Error(t, err)
}

func TestUpdateUser(t *testing.T) {
	u := &model.User{ID: 3}
	require.NoError(t, UpdateUser(ctx, rowDB(database.FakeRow{Values: []any{now}}), u))
	require.Equal(t, now, u.UpdatedAt)

	err := UpdateUser(ctx, rowDB(database.FakeRow{Err: pgx.ErrNoRows}), u)
	require.True(t, IsNotFound(err))
}

func TestUserExecs(t *testing.T) {
	cases := []struct {
		name string
		fn   func(db database.Querier) error
	}{
		{"roles", func(db database.Querier) error { return UpdateUserRoles(ctx, db, 1, true, false) }},
		{"password", func(db database.Querier) error { return UpdateUserPassword(ctx, db, 1, "h") }},
		{"delete", func(db database.Querier) error { return DeleteUser(ctx, db, 1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.fn(execDB("UPDATE 1", nil)))
			require.True(t, IsNotFound(tc.fn(execDB("UPDATE 0", nil))))
			require.ErrorIs(t, tc.fn(execDB("", errDB)), errDB)
		})
	}
}
