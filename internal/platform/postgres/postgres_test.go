package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	kv := "host=localhost port=5432 user=app dbname=orders sslmode=disable"
	got, err := NormalizeDSN("  " + kv + " ")
	require.NoError(t, err)
	require.Equal(t, kv, got)

	got, err = NormalizeDSN("postgres://app:secret@db:5432/orders?sslmode=disable")
	require.NoError(t, err)
	require.Contains(t, got, "host=db")
	require.Contains(t, got, "dbname=orders")
	require.Contains(t, got, "sslmode=disable")

	_, err = NormalizeDSN("   ")
	require.Error(t, err)
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "")
	require.Error(t, err)
}
