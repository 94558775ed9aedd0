package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecostock/ecostock-api/internal/database"
	"github.com/ecostock/ecostock-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerTime(t *testing.T) {
	db := testutil.SetupTestDB(t)

	now, err := database.ServerTime(context.Background(), db)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), now, time.Minute)
}

func TestHealthCheckWithStats(t *testing.T) {
	db := testutil.SetupTestDB(t)

	stats, err := database.HealthCheckWithStats(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = database.HealthCheckWithStats(context.Background(), db)
	assert.Error(t, err)
}
