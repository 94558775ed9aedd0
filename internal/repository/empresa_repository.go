package repository

import (
	"context"

	"github.com/ecostock/ecostock-api/internal/domain"
	"gorm.io/gorm"
)

// EmpresaRepository handles company data access operations
type EmpresaRepository struct {
	db *gorm.DB
}

// NewEmpresaRepository creates a new company repository instance
func NewEmpresaRepository(db *gorm.DB) *EmpresaRepository {
	return &EmpresaRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *EmpresaRepository) WithTx(tx *gorm.DB) *EmpresaRepository {
	return &EmpresaRepository{db: tx}
}

// List returns all companies
func (r *EmpresaRepository) List(ctx context.Context) ([]domain.Empresa, error) {
	var empresas []domain.Empresa
	if err := r.db.WithContext(ctx).Order("empresa_id ASC").Find(&empresas).Error; err != nil {
		return nil, err
	}
	return empresas, nil
}

// GetByID retrieves a company by its ID
func (r *EmpresaRepository) GetByID(ctx context.Context, id int64) (*domain.Empresa, error) {
	var empresa domain.Empresa
	err := r.db.WithContext(ctx).Where("empresa_id = ?", id).First(&empresa).Error
	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

// Create inserts a company and fills in its generated ID and registration time
func (r *EmpresaRepository) Create(ctx context.Context, empresa *domain.Empresa) error {
	return r.db.WithContext(ctx).Create(empresa).Error
}

// Update overwrites the editable fields of a company. The registration
// timestamp is never touched. Returns gorm.ErrRecordNotFound when no row matched.
func (r *EmpresaRepository) Update(ctx context.Context, empresa *domain.Empresa) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Empresa{}).
		Where("empresa_id = ?", empresa.ID).
		Updates(map[string]interface{}{
			"nome":        empresa.Nome,
			"cnpj":        empresa.CNPJ,
			"endereco":    empresa.Endereco,
			"telefone":    empresa.Telefone,
			"email":       empresa.Email,
			"responsavel": empresa.Responsavel,
			"ramo":        empresa.Ramo,
			"produtos":    empresa.Produtos,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RenameRamo rewrites the line of business of every company from oldRamo to
// newRamo and returns how many rows changed.
func (r *EmpresaRepository) RenameRamo(ctx context.Context, oldRamo, newRamo string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Empresa{}).
		Where("ramo = ?", oldRamo).
		Update("ramo", newRamo)
	return result.RowsAffected, result.Error
}

// ListOrphanedRamo returns companies whose ramo is set but matches no category name
func (r *EmpresaRepository) ListOrphanedRamo(ctx context.Context) ([]domain.Empresa, error) {
	var empresas []domain.Empresa
	err := r.db.WithContext(ctx).
		Where("ramo IS NOT NULL AND ramo <> ''").
		Where("NOT EXISTS (SELECT 1 FROM categorias c WHERE c.nome = empresas.ramo)").
		Order("empresa_id ASC").
		Find(&empresas).Error
	if err != nil {
		return nil, err
	}
	return empresas, nil
}
