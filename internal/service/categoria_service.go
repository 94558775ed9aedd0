package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoriaService handles business logic for product categories
type CategoriaService struct {
	db            *gorm.DB
	categoriaRepo *repository.CategoriaRepository
	empresaRepo   *repository.EmpresaRepository
	logger        *zap.Logger
}

// NewCategoriaService creates a new category service instance
func NewCategoriaService(
	db *gorm.DB,
	categoriaRepo *repository.CategoriaRepository,
	empresaRepo *repository.EmpresaRepository,
	logger *zap.Logger,
) *CategoriaService {
	return &CategoriaService{
		db:            db,
		categoriaRepo: categoriaRepo,
		empresaRepo:   empresaRepo,
		logger:        logger,
	}
}

// List returns all categories with the number of companies in each and
// the sum of their products
func (s *CategoriaService) List(ctx context.Context) ([]domain.CategoriaResumo, error) {
	categorias, err := s.categoriaRepo.ListWithTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categorias: %w", err)
	}
	return categorias, nil
}

// Create creates a new category
func (s *CategoriaService) Create(ctx context.Context, req *domain.CreateCategoriaRequest) (*domain.Categoria, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return nil, fmt.Errorf("%w: nome is required", ErrInvalidInput)
	}

	categoria := &domain.Categoria{
		Nome:      nome,
		Descricao: nullIfEmpty(req.Descricao),
	}

	if err := s.categoriaRepo.Create(ctx, categoria); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoriaDuplicada
		}
		return nil, fmt.Errorf("failed to create categoria: %w", err)
	}

	s.logger.Info("categoria created",
		zap.Int64("categoria_id", categoria.ID),
		zap.String("nome", categoria.Nome))

	return categoria, nil
}

// Update renames and describes a category. When the name changes, every
// company whose ramo held the old name is moved to the new one in the same
// transaction.
func (s *CategoriaService) Update(ctx context.Context, id int64, req *domain.UpdateCategoriaRequest) (*domain.Categoria, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return nil, fmt.Errorf("%w: nome is required", ErrInvalidInput)
	}

	var (
		updated *domain.Categoria
		oldNome string
		renamed int64
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoriaRepo := s.categoriaRepo.WithTx(tx)
		empresaRepo := s.empresaRepo.WithTx(tx)

		current, err := categoriaRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoriaNotFound
			}
			return fmt.Errorf("failed to get categoria: %w", err)
		}
		oldNome = current.Nome

		current.Nome = nome
		current.Descricao = nullIfEmpty(req.Descricao)
		if err := categoriaRepo.Update(ctx, current); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCategoriaDuplicada
			}
			return fmt.Errorf("failed to update categoria: %w", err)
		}

		if oldNome != nome {
			renamed, err = empresaRepo.RenameRamo(ctx, oldNome, nome)
			if err != nil {
				return fmt.Errorf("failed to rename ramo of empresas: %w", err)
			}
		}

		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldNome != nome {
		s.logger.Info("categoria renamed",
			zap.Int64("categoria_id", id),
			zap.String("from", oldNome),
			zap.String("to", nome),
			zap.Int64("empresas_updated", renamed))
	}

	return updated, nil
}

// Delete removes a category. Companies still naming it in their ramo are kept.
func (s *CategoriaService) Delete(ctx context.Context, id int64) error {
	if err := s.categoriaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoriaNotFound
		}
		return fmt.Errorf("failed to delete categoria: %w", err)
	}

	s.logger.Info("categoria deleted", zap.Int64("categoria_id", id))
	return nil
}
