package repository

import (
	"context"

	"github.com/ecostock/ecostock-api/internal/domain"
	"gorm.io/gorm"
)

// TrocaRepository handles exchange data access operations
type TrocaRepository struct {
	db *gorm.DB
}

// NewTrocaRepository creates a new exchange repository instance
func NewTrocaRepository(db *gorm.DB) *TrocaRepository {
	return &TrocaRepository{db: db}
}

// List returns all exchanges
func (r *TrocaRepository) List(ctx context.Context) ([]domain.Troca, error) {
	var trocas []domain.Troca
	if err := r.db.WithContext(ctx).Order("troca_id ASC").Find(&trocas).Error; err != nil {
		return nil, err
	}
	return trocas, nil
}

// GetByID retrieves an exchange by its ID
func (r *TrocaRepository) GetByID(ctx context.Context, id int64) (*domain.Troca, error) {
	var troca domain.Troca
	err := r.db.WithContext(ctx).Where("troca_id = ?", id).First(&troca).Error
	if err != nil {
		return nil, err
	}
	return &troca, nil
}

// Create inserts an exchange and fills in its generated ID
func (r *TrocaRepository) Create(ctx context.Context, troca *domain.Troca) error {
	return r.db.WithContext(ctx).Create(troca).Error
}

// UpdateStatus changes the status of an exchange.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *TrocaRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Troca{}).
		Where("troca_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an exchange.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *TrocaRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("troca_id = ?", id).Delete(&domain.Troca{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
