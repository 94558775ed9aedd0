package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func createCategoriaHandler(db *gorm.DB) *handler.CategoriaHandler {
	logger := zap.NewNop()
	svc := service.NewCategoriaService(
		db,
		repository.NewCategoriaRepository(db),
		repository.NewEmpresaRepository(db),
		logger,
	)
	return handler.NewCategoriaHandler(svc, logger)
}

func TestCategoriaHandler_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createCategoriaHandler(db)

	t.Run("returns 201 with the created row", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/categorias", map[string]string{
			"nome":      "Eletrônicos",
			"descricao": "Aparelhos",
		}))

		require.Equal(t, http.StatusCreated, rr.Code)
		var categoria domain.Categoria
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &categoria))
		assert.NotZero(t, categoria.ID)
		assert.Equal(t, "Eletrônicos", categoria.Nome)
		assert.Equal(t, "Aparelhos", *categoria.Descricao)
	})

	t.Run("missing nome", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/categorias", map[string]string{"descricao": "x"}))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "Nome da categoria é obrigatório", resp.Error)
		assert.Contains(t, resp.Fields, "nome")
	})

	t.Run("duplicate nome", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/categorias", map[string]string{"nome": "Eletrônicos"}))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Create(rr, jsonRequest(t, http.MethodPost, "/api/categorias", "{nome"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCategoriaHandler_UpdateCascadesToList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createCategoriaHandler(db)

	categoria := testutil.CreateTestCategoria(t, db, "Eletrônicos")
	testutil.CreateTestEmpresa(t, db, "Acme", testutil.Ptr("Eletrônicos"), 10)
	testutil.CreateTestEmpresa(t, db, "Beta", testutil.Ptr("Eletrônicos"), 5)

	rr := httptest.NewRecorder()
	req := withID(jsonRequest(t, http.MethodPut, "/api/categorias/1", map[string]string{"nome": "Eletro"}), "1")
	h.Update(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated domain.Categoria
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, categoria.ID, updated.ID)
	assert.Equal(t, "Eletro", updated.Nome)

	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/categorias", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var list []domain.CategoriaResumo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Eletro", list[0].Nome)
	assert.Equal(t, int64(2), list[0].Empresas)
	assert.Equal(t, int64(15), list[0].Produtos)
}

func TestCategoriaHandler_Update_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createCategoriaHandler(db)

	t.Run("unknown id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Update(rr, withID(jsonRequest(t, http.MethodPut, "/api/categorias/99", map[string]string{"nome": "X"}), "99"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Categoria não encontrada", decodeError(t, rr).Error)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Update(rr, withID(jsonRequest(t, http.MethodPut, "/api/categorias/abc", map[string]string{"nome": "X"}), "abc"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCategoriaHandler_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createCategoriaHandler(db)

	testutil.CreateTestCategoria(t, db, "Eletrônicos")

	rr := httptest.NewRecorder()
	h.Delete(rr, withID(httptest.NewRequest(http.MethodDelete, "/api/categorias/1", nil), "1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Delete(rr, withID(httptest.NewRequest(http.MethodDelete, "/api/categorias/1", nil), "1"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Categoria não encontrada", decodeError(t, rr).Error)
}
