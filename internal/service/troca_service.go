package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TrocaService handles business logic for exchanges between companies
type TrocaService struct {
	trocaRepo *repository.TrocaRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewTrocaService creates a new exchange service instance
func NewTrocaService(trocaRepo *repository.TrocaRepository, logger *zap.Logger) *TrocaService {
	return &TrocaService{
		trocaRepo: trocaRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all exchanges
func (s *TrocaService) List(ctx context.Context) ([]domain.Troca, error) {
	trocas, err := s.trocaRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trocas: %w", err)
	}
	return trocas, nil
}

// GetByID retrieves an exchange by ID
func (s *TrocaService) GetByID(ctx context.Context, id int64) (*domain.Troca, error) {
	troca, err := s.trocaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrocaNotFound
		}
		return nil, fmt.Errorf("failed to get troca: %w", err)
	}
	return troca, nil
}

// Create records a new exchange. The date defaults to now and the
// status to pendente.
func (s *TrocaService) Create(ctx context.Context, req *domain.CreateTrocaRequest) (*domain.Troca, error) {
	if req.EmpresaSolicitante == "" || req.EmpresaReceptora == "" ||
		req.CategoriaSolicitante == "" || req.CategoriaReceptora == "" {
		return nil, fmt.Errorf("%w: empresas and categorias are required", ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = domain.TrocaStatusPendente
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	troca := &domain.Troca{
		EmpresaSolicitante:   req.EmpresaSolicitante,
		EmpresaReceptora:     req.EmpresaReceptora,
		Data:                 req.Data.OrNow(s.now),
		Status:               status,
		Observacoes:          nullIfEmpty(req.Observacoes),
		CategoriaSolicitante: req.CategoriaSolicitante,
		CategoriaReceptora:   req.CategoriaReceptora,
	}

	if err := s.trocaRepo.Create(ctx, troca); err != nil {
		return nil, fmt.Errorf("failed to create troca: %w", err)
	}

	s.logger.Info("troca created",
		zap.Int64("troca_id", troca.ID),
		zap.String("solicitante", troca.EmpresaSolicitante),
		zap.String("receptora", troca.EmpresaReceptora))

	return troca, nil
}

// UpdateStatus changes the status of an exchange. No other field is editable.
func (s *TrocaService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Troca, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	if err := s.trocaRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrocaNotFound
		}
		return nil, fmt.Errorf("failed to update troca status: %w", err)
	}

	s.logger.Info("troca status updated",
		zap.Int64("troca_id", id),
		zap.String("status", status))

	return s.GetByID(ctx, id)
}

// Delete removes an exchange
func (s *TrocaService) Delete(ctx context.Context, id int64) error {
	if err := s.trocaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrocaNotFound
		}
		return fmt.Errorf("failed to delete troca: %w", err)
	}

	s.logger.Info("troca deleted", zap.Int64("troca_id", id))
	return nil
}

// validateStatus counts characters, not bytes: "Concluída" is 9 long.
func validateStatus(status string) error {
	if utf8.RuneCountInString(status) > domain.MaxTrocaStatusLength {
		return fmt.Errorf("%w: %d characters", ErrStatusTooLong, utf8.RuneCountInString(status))
	}
	return nil
}
