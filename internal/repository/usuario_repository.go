package repository

import (
	"context"

	"github.com/ecostock/ecostock-api/internal/domain"
	"gorm.io/gorm"
)

// UsuarioRepository handles admin account data access operations
type UsuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository creates a new admin account repository instance
func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

// GetByLogin retrieves an account by its login
func (r *UsuarioRepository) GetByLogin(ctx context.Context, login string) (*domain.Usuario, error) {
	var usuario domain.Usuario
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Create inserts an account
func (r *UsuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

// List returns all accounts
func (r *UsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	var usuarios []domain.Usuario
	if err := r.db.WithContext(ctx).Order("usuario_id ASC").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

// UpdateSenha replaces the stored password of an account
func (r *UsuarioRepository) UpdateSenha(ctx context.Context, id int64, senha string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Usuario{}).
		Where("usuario_id = ?", id).
		Update("senha", senha)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
