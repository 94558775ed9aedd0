package handler

import (
	"errors"
	"net/http"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/service"
	"go.uber.org/zap"
)

const msgCategoriaNomeObrigatorio = "Nome da categoria é obrigatório"

// CategoriaHandler handles HTTP requests for product categories
type CategoriaHandler struct {
	categoriaService *service.CategoriaService
	logger           *zap.Logger
}

// NewCategoriaHandler creates a new category handler instance
func NewCategoriaHandler(categoriaService *service.CategoriaService, logger *zap.Logger) *CategoriaHandler {
	return &CategoriaHandler{
		categoriaService: categoriaService,
		logger:           logger,
	}
}

// List godoc
// @Summary List categories
// @Description All categories with the number of companies in each and their product total
// @Tags Categorias
// @Produce json
// @Success 200 {array} domain.CategoriaResumo
// @Failure 500 {object} domain.ErrorResponse
// @Router /categorias [get]
func (h *CategoriaHandler) List(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.categoriaService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list categorias", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Erro ao listar categorias")
		return
	}

	respondJSON(w, http.StatusOK, categorias)
}

// Create godoc
// @Summary Create category
// @Tags Categorias
// @Accept json
// @Produce json
// @Param request body domain.CreateCategoriaRequest true "Category data"
// @Success 201 {object} domain.Categoria
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /categorias [post]
func (h *CategoriaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCategoriaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, msgCategoriaNomeObrigatorio, err)
		return
	}

	categoria, err := h.categoriaService.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao criar categoria")
		return
	}

	respondJSON(w, http.StatusCreated, categoria)
}

// Update godoc
// @Summary Update category
// @Description Renaming a category moves every company in it to the new name
// @Tags Categorias
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body domain.UpdateCategoriaRequest true "Category data"
// @Success 200 {object} domain.Categoria
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /categorias/{id} [put]
func (h *CategoriaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateCategoriaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, msgCategoriaNomeObrigatorio, err)
		return
	}

	categoria, err := h.categoriaService.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao atualizar categoria")
		return
	}

	respondJSON(w, http.StatusOK, categoria)
}

// Delete godoc
// @Summary Delete category
// @Description Companies in the category keep their ramo
// @Tags Categorias
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /categorias/{id} [delete]
func (h *CategoriaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.categoriaService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "Erro ao deletar categoria")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoriaHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, msgCategoriaNomeObrigatorio)
	case errors.Is(err, service.ErrCategoriaNotFound):
		respondError(w, http.StatusNotFound, "Categoria não encontrada")
	case errors.Is(err, service.ErrCategoriaDuplicada):
		respondError(w, http.StatusConflict, "Já existe uma categoria com este nome")
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
