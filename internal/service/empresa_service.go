package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmpresaService handles business logic for partner companies
type EmpresaService struct {
	empresaRepo *repository.EmpresaRepository
	logger      *zap.Logger
}

// NewEmpresaService creates a new company service instance
func NewEmpresaService(empresaRepo *repository.EmpresaRepository, logger *zap.Logger) *EmpresaService {
	return &EmpresaService{
		empresaRepo: empresaRepo,
		logger:      logger,
	}
}

// List returns all companies
func (s *EmpresaService) List(ctx context.Context) ([]domain.Empresa, error) {
	empresas, err := s.empresaRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list empresas: %w", err)
	}
	return empresas, nil
}

// GetByID retrieves a company by ID
func (s *EmpresaService) GetByID(ctx context.Context, id int64) (*domain.Empresa, error) {
	empresa, err := s.empresaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, fmt.Errorf("failed to get empresa: %w", err)
	}
	return empresa, nil
}

// Create registers a new company
func (s *EmpresaService) Create(ctx context.Context, req *domain.CreateEmpresaRequest) (*domain.Empresa, error) {
	if req.Nome == "" || req.CNPJ == "" || req.Telefone == "" {
		return nil, fmt.Errorf("%w: nome, cnpj and telefone are required", ErrInvalidInput)
	}
	if req.Produtos != nil && *req.Produtos < 0 {
		return nil, fmt.Errorf("%w: produtos must not be negative", ErrInvalidInput)
	}

	empresa := &domain.Empresa{
		Nome:        req.Nome,
		CNPJ:        req.CNPJ,
		Endereco:    nullIfEmpty(req.Endereco),
		Telefone:    req.Telefone,
		Email:       nullIfEmpty(req.Email),
		Responsavel: nullIfEmpty(req.Responsavel),
		Ramo:        nullIfEmpty(req.Ramo),
		Produtos:    produtosOrZero(req.Produtos),
	}

	if err := s.empresaRepo.Create(ctx, empresa); err != nil {
		return nil, fmt.Errorf("failed to create empresa: %w", err)
	}

	s.logger.Info("empresa created",
		zap.Int64("empresa_id", empresa.ID),
		zap.String("nome", empresa.Nome))

	return empresa, nil
}

// Update overwrites the editable fields of a company
func (s *EmpresaService) Update(ctx context.Context, id int64, req *domain.UpdateEmpresaRequest) (*domain.Empresa, error) {
	if req.Nome == "" || req.CNPJ == "" || req.Telefone == "" {
		return nil, fmt.Errorf("%w: nome, cnpj and telefone are required", ErrInvalidInput)
	}
	if req.Produtos != nil && *req.Produtos < 0 {
		return nil, fmt.Errorf("%w: produtos must not be negative", ErrInvalidInput)
	}

	empresa := &domain.Empresa{
		ID:          id,
		Nome:        req.Nome,
		CNPJ:        req.CNPJ,
		Endereco:    nullIfEmpty(req.Endereco),
		Telefone:    req.Telefone,
		Email:       nullIfEmpty(req.Email),
		Responsavel: nullIfEmpty(req.Responsavel),
		Ramo:        nullIfEmpty(req.Ramo),
		Produtos:    produtosOrZero(req.Produtos),
	}

	if err := s.empresaRepo.Update(ctx, empresa); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, fmt.Errorf("failed to update empresa: %w", err)
	}

	return s.GetByID(ctx, id)
}

// ListOrphanedRamo returns companies whose ramo names no existing category
func (s *EmpresaService) ListOrphanedRamo(ctx context.Context) ([]domain.Empresa, error) {
	empresas, err := s.empresaRepo.ListOrphanedRamo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned empresas: %w", err)
	}
	return empresas, nil
}

func produtosOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
