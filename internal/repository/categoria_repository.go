package repository

import (
	"context"

	"github.com/ecostock/ecostock-api/internal/domain"
	"gorm.io/gorm"
)

// listCategoriasQuery aggregates companies by matching empresas.ramo against
// categorias.nome. The relationship is textual, there is no foreign key.
const listCategoriasQuery = `
SELECT
	c.categoria_id,
	c.nome,
	c.descricao,
	COALESCE((SELECT COUNT(*) FROM empresas e WHERE e.ramo = c.nome), 0) AS empresas,
	COALESCE((SELECT SUM(e.produtos) FROM empresas e WHERE e.ramo = c.nome), 0) AS produtos
FROM categorias c
ORDER BY c.categoria_id`

// CategoriaRepository handles category data access operations
type CategoriaRepository struct {
	db *gorm.DB
}

// NewCategoriaRepository creates a new category repository instance
func NewCategoriaRepository(db *gorm.DB) *CategoriaRepository {
	return &CategoriaRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *CategoriaRepository) WithTx(tx *gorm.DB) *CategoriaRepository {
	return &CategoriaRepository{db: tx}
}

// ListWithTotals returns every category with its company count and product sum
func (r *CategoriaRepository) ListWithTotals(ctx context.Context) ([]domain.CategoriaResumo, error) {
	categorias := []domain.CategoriaResumo{}
	if err := r.db.WithContext(ctx).Raw(listCategoriasQuery).Scan(&categorias).Error; err != nil {
		return nil, err
	}
	return categorias, nil
}

// GetByID retrieves a category by its ID
func (r *CategoriaRepository) GetByID(ctx context.Context, id int64) (*domain.Categoria, error) {
	var categoria domain.Categoria
	err := r.db.WithContext(ctx).Where("categoria_id = ?", id).First(&categoria).Error
	if err != nil {
		return nil, err
	}
	return &categoria, nil
}

// Create inserts a category and fills in its generated ID
func (r *CategoriaRepository) Create(ctx context.Context, categoria *domain.Categoria) error {
	return r.db.WithContext(ctx).Create(categoria).Error
}

// Update writes name and description of an existing category.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *CategoriaRepository) Update(ctx context.Context, categoria *domain.Categoria) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Categoria{}).
		Where("categoria_id = ?", categoria.ID).
		Updates(map[string]interface{}{
			"nome":      categoria.Nome,
			"descricao": categoria.Descricao,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a category. Companies referencing its name are left as they are.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *CategoriaRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("categoria_id = ?", id).Delete(&domain.Categoria{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
