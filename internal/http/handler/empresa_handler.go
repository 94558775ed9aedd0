package handler

import (
	"errors"
	"net/http"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/service"
	"go.uber.org/zap"
)

const (
	msgEmpresaCamposObrigatorios = "Nome, CNPJ e telefone são obrigatórios"
	msgEmpresaProdutosNegativo   = "Produtos não pode ser negativo"
)

// EmpresaHandler handles HTTP requests for partner companies
type EmpresaHandler struct {
	empresaService *service.EmpresaService
	logger         *zap.Logger
}

// NewEmpresaHandler creates a new company handler instance
func NewEmpresaHandler(empresaService *service.EmpresaService, logger *zap.Logger) *EmpresaHandler {
	return &EmpresaHandler{
		empresaService: empresaService,
		logger:         logger,
	}
}

// List godoc
// @Summary List companies
// @Tags Empresas
// @Produce json
// @Success 200 {array} domain.Empresa
// @Failure 500 {object} domain.ErrorResponse
// @Router /empresas [get]
func (h *EmpresaHandler) List(w http.ResponseWriter, r *http.Request) {
	empresas, err := h.empresaService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list empresas", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Erro ao listar empresas")
		return
	}

	respondJSON(w, http.StatusOK, empresas)
}

// GetByID godoc
// @Summary Get company by ID
// @Tags Empresas
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} domain.Empresa
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /empresas/{id} [get]
func (h *EmpresaHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	empresa, err := h.empresaService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao buscar empresa")
		return
	}

	respondJSON(w, http.StatusOK, empresa)
}

// Create godoc
// @Summary Create company
// @Tags Empresas
// @Accept json
// @Produce json
// @Param request body domain.CreateEmpresaRequest true "Company data"
// @Success 201 {object} domain.Empresa
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /empresas [post]
func (h *EmpresaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmpresaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, empresaValidationMessage(err), err)
		return
	}

	empresa, err := h.empresaService.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao criar empresa")
		return
	}

	respondJSON(w, http.StatusCreated, empresa)
}

// Update godoc
// @Summary Update company
// @Tags Empresas
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param request body domain.UpdateEmpresaRequest true "Company data"
// @Success 200 {object} domain.Empresa
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /empresas/{id} [put]
func (h *EmpresaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateEmpresaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, empresaValidationMessage(err), err)
		return
	}

	empresa, err := h.empresaService.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao atualizar empresa")
		return
	}

	respondJSON(w, http.StatusOK, empresa)
}

func empresaValidationMessage(err error) string {
	if onlyFieldErrors(err, "produtos") {
		return msgEmpresaProdutosNegativo
	}
	return msgEmpresaCamposObrigatorios
}

func (h *EmpresaHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, msgEmpresaCamposObrigatorios)
	case errors.Is(err, service.ErrEmpresaNotFound):
		respondError(w, http.StatusNotFound, "Empresa não encontrada")
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
