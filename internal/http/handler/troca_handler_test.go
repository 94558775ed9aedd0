package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/http/handler"
	"github.com/ecostock/ecostock-api/internal/repository"
	"github.com/ecostock/ecostock-api/internal/service"
	"github.com/ecostock/ecostock-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createTrocaHandler(db *gorm.DB) *handler.TrocaHandler {
	logger := zap.NewNop()
	return handler.NewTrocaHandler(service.NewTrocaService(repository.NewTrocaRepository(db), logger), logger)
}

func trocaBody(status string) map[string]string {
	return map[string]string{
		"empresa_solicitante":   "Acme",
		"empresa_receptora":     "Beta",
		"categoria_solicitante": "Eletrônicos",
		"categoria_receptora":   "Móveis",
		"status":                status,
		"data":                  "",
	}
}

func TestTrocaHandler_Create_StatusLength(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createTrocaHandler(db)

	t.Run("51 characters", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/trocas", trocaBody(strings.Repeat("s", 51))))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "O status não pode ter mais de 50 caracteres", decodeError(t, rr).Error)
	})

	t.Run("50 characters", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/trocas", trocaBody(strings.Repeat("s", 50))))
		require.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("defaults", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/trocas", trocaBody("")))
		require.Equal(t, http.StatusCreated, rr.Code)

		var troca domain.Troca
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &troca))
		assert.Equal(t, "pendente", troca.Status)
		assert.False(t, troca.Data.IsZero())
	})

	t.Run("missing categoria", func(t *testing.T) {
		body := trocaBody("")
		delete(body, "categoria_receptora")
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/trocas", body))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Empresa solicitante, receptora e categorias são obrigatórias", decodeError(t, rr).Error)
	})
}

func TestTrocaHandler_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createTrocaHandler(db)

	troca := testutil.CreateTestTroca(t, db, "Acme", "Beta")
	id := strconv.FormatInt(troca.ID, 10)

	t.Run("changes status only", func(t *testing.T) {
		body := map[string]string{"status": "Concluída", "empresa_solicitante": "Ignorada"}
		rr := httptest.NewRecorder()
		h.Update(rr, withID(jsonRequest(t, http.MethodPut, "/api/trocas/"+id, body), id))
		require.Equal(t, http.StatusOK, rr.Code)

		var updated domain.Troca
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		assert.Equal(t, "Concluída", updated.Status)
		assert.Equal(t, "Acme", updated.EmpresaSolicitante)
	})

	t.Run("status required", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Update(rr, withID(jsonRequest(t, http.MethodPut, "/api/trocas/"+id, map[string]string{}), id))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Status é obrigatório", decodeError(t, rr).Error)
	})

	t.Run("status too long", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Update(rr, withID(jsonRequest(t, http.MethodPut, "/api/trocas/"+id,
			map[string]string{"status": strings.Repeat("x", 51)}), id))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "O status não pode ter mais de 50 caracteres", decodeError(t, rr).Error)
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Update(rr, withID(jsonRequest(t, http.MethodPut, "/api/trocas/999", map[string]string{"status": "x"}), "999"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTrocaHandler_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createTrocaHandler(db)

	troca := testutil.CreateTestTroca(t, db, "Acme", "Beta")
	id := strconv.FormatInt(troca.ID, 10)

	rr := httptest.NewRecorder()
	h.Delete(rr, withID(httptest.NewRequest(http.MethodDelete, "/api/trocas/"+id, nil), id))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Troca excluída com sucesso"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.GetByID(rr, withID(httptest.NewRequest(http.MethodGet, "/api/trocas/"+id, nil), id))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Troca não encontrada", decodeError(t, rr).Error)
}
