package postgres

import (
	"context"
	"testing"

	"career-sync/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "career",
		DBPassword: "s3cret",
		DBName:     "careers",
		DBSSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5432 user=career password=s3cret dbname=careers sslmode=disable", dsn)
}

func TestNilPool(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	require.ErrorIs(t, p.Ping(ctx), errNilDB)
	_, err := p.Exec(ctx, "SELECT 1")
	require.ErrorIs(t, err, errNilDB)
	_, err = p.Query(ctx, "SELECT 1")
	require.ErrorIs(t, err, errNilDB)
	require.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), errNilDB)
	_, err = p.Begin(ctx)
	require.ErrorIs(t, err, errNilDB)
	assert.NoError(t, p.Close())
	assert.Nil(t, p.SQLDB())
}
