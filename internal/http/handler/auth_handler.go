package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/service"
	"go.uber.org/zap"
)

const msgLoginCamposObrigatorios = "Login e senha são obrigatórios"

// Authenticator checks admin credentials
type Authenticator interface {
	Login(ctx context.Context, login, senha string) (*domain.UserDTO, error)
}

type AuthHandler struct {
	authService Authenticator
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return NewAuthHandlerWithAuthenticator(authService, logger)
}

// NewAuthHandlerWithAuthenticator creates an auth handler over any Authenticator, used by tests
func NewAuthHandlerWithAuthenticator(authService Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Admin login
// @Description Checks login and senha. The password is never echoed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgLoginCamposObrigatorios)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, msgLoginCamposObrigatorios, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Login, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, msgLoginCamposObrigatorios)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Login ou senha inválidos")
		default:
			h.logger.Error("failed to login", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Erro ao realizar login")
		}
		return
	}

	h.logger.Info("admin logged in", zap.Int64("usuario_id", user.ID))
	respondJSON(w, http.StatusOK, domain.LoginResponse{
		Message: "Login bem-sucedido",
		User:    *user,
	})
}
