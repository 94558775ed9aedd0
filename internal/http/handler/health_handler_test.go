package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/http/handler"
	"github.com/ecostock/ecostock-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handler.NewHealthHandler(db, zap.NewNop())

	t.Run("live", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Live(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Servidor OK", rr.Body.String())
	})

	t.Run("database", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Database(rr, httptest.NewRequest(http.MethodGet, "/health/db", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Contains(t, body, "stats")
	})

	t.Run("db-test", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.DBTest(rr, httptest.NewRequest(http.MethodGet, "/db-test", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var body domain.DBTestResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Conexão com PostgreSQL bem-sucedida!", body.Message)
		assert.False(t, body.ServerTime.IsZero())
	})

	t.Run("database closed", func(t *testing.T) {
		closed := testutil.SetupTestDB(t)
		sqlDB, err := closed.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		rr := httptest.NewRecorder()
		handler.NewHealthHandler(closed, zap.NewNop()).Database(rr, httptest.NewRequest(http.MethodGet, "/health/db", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
