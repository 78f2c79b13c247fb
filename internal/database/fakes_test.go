package database

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeRow(t *testing.T) {
	var (
		id   int
		name string
		at   *time.Time
		skip string
	)
	now := time.Now()
	require.NoError(t, FakeRow{Values: []any{7, "n", now, nil}}.Scan(&id, &name, &at, &skip))
	require.Equal(t, 7, id)
	require.Equal(t, "n", name)
	require.Equal(t, now, *at)
	require.Empty(t, skip)

	require.EqualError(t, FakeRow{Err: errors.New("x")}.Scan(&id), "x")
	require.Error(t, FakeRow{Values: []any{1, 2}}.Scan(&id))
	require.Error(t, FakeRow{Values: []any{"s"}}.Scan(&id))
	require.Error(t, FakeRow{Values: []any{1}}.Scan(id))
}

func TestFakeRows(t *testing.T) {
	rows := &FakeRows{Data: [][]any{{1}, {2}}}
	var got []int
	for rows.Next() {
		var v int
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	rows.Close()
	require.Equal(t, []int{1, 2}, got)
	require.True(t, rows.Closed)
	require.NoError(t, rows.Err())

	bad := &FakeRows{Data: [][]any{{1}}, ScanErr: errors.New("scan")}
	require.True(t, bad.Next())
	var v int
	require.EqualError(t, bad.Scan(&v), "scan")
}
