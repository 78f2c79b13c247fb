package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{OrderPending, OrderPaid, true},
		{OrderPending, OrderCancelled, true},
		{OrderPaid, OrderRefunded, true},
		{OrderPending, OrderRefunded, false},
		{OrderPaid, OrderCancelled, false},
		{OrderCancelled, OrderPaid, false},
		{OrderRefunded, OrderPaid, false},
		{OrderPaid, OrderPaid, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestProgressPercent(t *testing.T) {
	require.Equal(t, 0, ProgressPercent(0, 0))
	require.Equal(t, 0, ProgressPercent(0, 3))
	require.Equal(t, 33, ProgressPercent(1, 3))
	require.Equal(t, 66, ProgressPercent(2, 3))
	require.Equal(t, 100, ProgressPercent(3, 3))
	require.Equal(t, 100, ProgressPercent(5, 3))
}

func TestWalletTypes(t *testing.T) {
	for _, tt := range []string{TxDeposit, TxRefund, TxAdminCredit} {
		require.True(t, IsCredit(tt))
		require.True(t, ValidTxType(tt))
	}
	for _, tt := range []string{TxPurchase, TxAdminDebit} {
		require.False(t, IsCredit(tt))
		require.True(t, ValidTxType(tt))
	}
	require.False(t, ValidTxType("gift"))
}

func TestAccessHelpers(t *testing.T) {
	require.True(t, User{IsSuperAdmin: true}.HasAdminAccess())
	require.True(t, User{IsAdmin: true}.HasAdminAccess())
	require.False(t, User{}.HasAdminAccess())

	require.True(t, Enrollment{Status: EnrollmentActive}.GrantsAccess())
	require.True(t, Enrollment{Status: EnrollmentCompleted}.GrantsAccess())
	require.False(t, Enrollment{Status: EnrollmentRevoked}.GrantsAccess())

	require.True(t, Course{}.IsFree())
	require.False(t, Course{PriceCents: 1}.IsFree())
}
