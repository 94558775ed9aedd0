package handler

import (
	"errors"
	"net/http"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/service"
	"go.uber.org/zap"
)

const msgComunicacaoCamposObrigatorios = "Empresa origem, empresa destino e assunto são obrigatórios"

// ComunicacaoHandler handles HTTP requests for the communication log
type ComunicacaoHandler struct {
	comunicacaoService *service.ComunicacaoService
	logger             *zap.Logger
}

// NewComunicacaoHandler creates a new communication handler instance
func NewComunicacaoHandler(comunicacaoService *service.ComunicacaoService, logger *zap.Logger) *ComunicacaoHandler {
	return &ComunicacaoHandler{
		comunicacaoService: comunicacaoService,
		logger:             logger,
	}
}

// List godoc
// @Summary List communications
// @Description Company ids are replaced by company names
// @Tags Comunicacoes
// @Produce json
// @Success 200 {array} domain.ComunicacaoDetalheDTO
// @Failure 500 {object} domain.ErrorResponse
// @Router /comunicacoes [get]
func (h *ComunicacaoHandler) List(w http.ResponseWriter, r *http.Request) {
	comunicacoes, err := h.comunicacaoService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list comunicacoes", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Erro ao buscar comunicações")
		return
	}

	respondJSON(w, http.StatusOK, comunicacoes)
}

// GetByID godoc
// @Summary Get communication by ID
// @Tags Comunicacoes
// @Produce json
// @Param id path int true "Communication ID"
// @Success 200 {object} domain.ComunicacaoDetalheDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /comunicacoes/{id} [get]
func (h *ComunicacaoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	comunicacao, err := h.comunicacaoService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao buscar comunicação")
		return
	}

	respondJSON(w, http.StatusOK, comunicacao)
}

// Create godoc
// @Summary Log communication
// @Description A duracao marks the contact as a phone call, none as a message
// @Tags Comunicacoes
// @Accept json
// @Produce json
// @Param request body domain.CreateComunicacaoRequest true "Communication data"
// @Success 201 {object} domain.ComunicacaoDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /comunicacoes [post]
func (h *ComunicacaoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateComunicacaoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, msgComunicacaoCamposObrigatorios, err)
		return
	}

	comunicacao, err := h.comunicacaoService.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao criar comunicação")
		return
	}

	respondJSON(w, http.StatusCreated, comunicacao)
}

func (h *ComunicacaoHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, msgComunicacaoCamposObrigatorios)
	case errors.Is(err, service.ErrEmpresaReferenciaInvalida):
		respondError(w, http.StatusBadRequest, "Empresa origem ou destino não encontrada")
	case errors.Is(err, service.ErrTrocaReferenciaInvalida):
		respondError(w, http.StatusBadRequest, "Troca informada não encontrada")
	case errors.Is(err, service.ErrComunicacaoNotFound):
		respondError(w, http.StatusNotFound, "Comunicação não encontrada")
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
