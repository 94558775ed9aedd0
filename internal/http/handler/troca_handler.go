package handler

import (
	"errors"
	"net/http"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/service"
	"go.uber.org/zap"
)

const (
	msgTrocaCamposObrigatorios = "Empresa solicitante, receptora e categorias são obrigatórias"
	msgTrocaStatusMuitoLongo   = "O status não pode ter mais de 50 caracteres"
	msgTrocaStatusObrigatorio  = "Status é obrigatório"
)

// TrocaHandler handles HTTP requests for exchanges
type TrocaHandler struct {
	trocaService *service.TrocaService
	logger       *zap.Logger
}

// NewTrocaHandler creates a new exchange handler instance
func NewTrocaHandler(trocaService *service.TrocaService, logger *zap.Logger) *TrocaHandler {
	return &TrocaHandler{
		trocaService: trocaService,
		logger:       logger,
	}
}

// List godoc
// @Summary List exchanges
// @Tags Trocas
// @Produce json
// @Success 200 {array} domain.Troca
// @Failure 500 {object} domain.ErrorResponse
// @Router /trocas [get]
func (h *TrocaHandler) List(w http.ResponseWriter, r *http.Request) {
	trocas, err := h.trocaService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list trocas", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Erro ao buscar trocas")
		return
	}

	respondJSON(w, http.StatusOK, trocas)
}

// GetByID godoc
// @Summary Get exchange by ID
// @Tags Trocas
// @Produce json
// @Param id path int true "Exchange ID"
// @Success 200 {object} domain.Troca
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /trocas/{id} [get]
func (h *TrocaHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	troca, err := h.trocaService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao buscar troca", msgTrocaCamposObrigatorios)
		return
	}

	respondJSON(w, http.StatusOK, troca)
}

// Create godoc
// @Summary Create exchange
// @Description Date defaults to now and status to pendente
// @Tags Trocas
// @Accept json
// @Produce json
// @Param request body domain.CreateTrocaRequest true "Exchange data"
// @Success 201 {object} domain.Troca
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /trocas [post]
func (h *TrocaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTrocaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		msg := msgTrocaCamposObrigatorios
		if onlyFieldErrors(err, "status") {
			msg = msgTrocaStatusMuitoLongo
		}
		respondValidationError(w, msg, err)
		return
	}

	troca, err := h.trocaService.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao criar troca", msgTrocaCamposObrigatorios)
		return
	}

	respondJSON(w, http.StatusCreated, troca)
}

// Update godoc
// @Summary Update exchange status
// @Description Only status is read from the body
// @Tags Trocas
// @Accept json
// @Produce json
// @Param id path int true "Exchange ID"
// @Param request body domain.UpdateTrocaStatusRequest true "New status"
// @Success 200 {object} domain.Troca
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /trocas/{id} [put]
func (h *TrocaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateTrocaStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		msg := msgTrocaStatusObrigatorio
		if hasFieldError(err, "status", "max") {
			msg = msgTrocaStatusMuitoLongo
		}
		respondValidationError(w, msg, err)
		return
	}

	troca, err := h.trocaService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondServiceError(w, err, "Erro ao atualizar troca", msgTrocaStatusObrigatorio)
		return
	}

	respondJSON(w, http.StatusOK, troca)
}

// Delete godoc
// @Summary Delete exchange
// @Tags Trocas
// @Produce json
// @Param id path int true "Exchange ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /trocas/{id} [delete]
func (h *TrocaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.trocaService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "Erro ao deletar troca", "")
		return
	}

	respondJSON(w, http.StatusOK, domain.MessageResponse{Message: "Troca excluída com sucesso"})
}

func (h *TrocaHandler) respondServiceError(w http.ResponseWriter, err error, fallback, invalidMsg string) {
	switch {
	case errors.Is(err, service.ErrStatusTooLong):
		respondError(w, http.StatusBadRequest, msgTrocaStatusMuitoLongo)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, invalidMsg)
	case errors.Is(err, service.ErrTrocaNotFound):
		respondError(w, http.StatusNotFound, "Troca não encontrada")
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
