package repository

import (
	"context"

	"github.com/ecostock/ecostock-api/internal/domain"
	"gorm.io/gorm"
)

const comunicacaoDetalheSelect = `
	c.contato_id,
	c.troca_id,
	c.assunto,
	c.data_contato,
	c.duracao,
	e1.nome AS empresa_origem,
	e2.nome AS empresa_destino`

// ComunicacaoRepository handles communication log data access operations
type ComunicacaoRepository struct {
	db *gorm.DB
}

// NewComunicacaoRepository creates a new communication repository instance
func NewComunicacaoRepository(db *gorm.DB) *ComunicacaoRepository {
	return &ComunicacaoRepository{db: db}
}

func (r *ComunicacaoRepository) detalheQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("contatos AS c").
		Select(comunicacaoDetalheSelect).
		Joins("JOIN empresas e1 ON c.empresa_origem_id = e1.empresa_id").
		Joins("JOIN empresas e2 ON c.empresa_destino_id = e2.empresa_id")
}

// ListDetalhes returns all communications with the company names resolved
func (r *ComunicacaoRepository) ListDetalhes(ctx context.Context) ([]domain.ComunicacaoDetalhe, error) {
	var detalhes []domain.ComunicacaoDetalhe
	if err := r.detalheQuery(ctx).Order("c.contato_id ASC").Scan(&detalhes).Error; err != nil {
		return nil, err
	}
	return detalhes, nil
}

// GetDetalheByID retrieves one communication with the company names resolved
func (r *ComunicacaoRepository) GetDetalheByID(ctx context.Context, id int64) (*domain.ComunicacaoDetalhe, error) {
	var detalhes []domain.ComunicacaoDetalhe
	err := r.detalheQuery(ctx).Where("c.contato_id = ?", id).Limit(1).Scan(&detalhes).Error
	if err != nil {
		return nil, err
	}
	if len(detalhes) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detalhes[0], nil
}

// Create inserts a communication and fills in its generated ID
func (r *ComunicacaoRepository) Create(ctx context.Context, comunicacao *domain.Comunicacao) error {
	return r.db.WithContext(ctx).Create(comunicacao).Error
}
