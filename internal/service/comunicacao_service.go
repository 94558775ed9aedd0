package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/mapper"
	"github.com/ecostock/ecostock-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ComunicacaoService handles business logic for the communication log
type ComunicacaoService struct {
	comunicacaoRepo *repository.ComunicacaoRepository
	empresaRepo     *repository.EmpresaRepository
	trocaRepo       *repository.TrocaRepository
	logger          *zap.Logger
	now             func() time.Time
}

// NewComunicacaoService creates a new communication service instance
func NewComunicacaoService(
	comunicacaoRepo *repository.ComunicacaoRepository,
	empresaRepo *repository.EmpresaRepository,
	trocaRepo *repository.TrocaRepository,
	logger *zap.Logger,
) *ComunicacaoService {
	return &ComunicacaoService{
		comunicacaoRepo: comunicacaoRepo,
		empresaRepo:     empresaRepo,
		trocaRepo:       trocaRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// List returns all communications with company names instead of ids
func (s *ComunicacaoService) List(ctx context.Context) ([]domain.ComunicacaoDetalheDTO, error) {
	detalhes, err := s.comunicacaoRepo.ListDetalhes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comunicacoes: %w", err)
	}
	return mapper.ToComunicacaoDetalheDTOs(detalhes), nil
}

// GetByID retrieves a communication with company names instead of ids
func (s *ComunicacaoService) GetByID(ctx context.Context, id int64) (*domain.ComunicacaoDetalheDTO, error) {
	detalhe, err := s.comunicacaoRepo.GetDetalheByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComunicacaoNotFound
		}
		return nil, fmt.Errorf("failed to get comunicacao: %w", err)
	}
	dto := mapper.ToComunicacaoDetalheDTO(detalhe)
	return &dto, nil
}

// Create logs a communication. A duration marks it as a phone call,
// no duration as a message.
func (s *ComunicacaoService) Create(ctx context.Context, req *domain.CreateComunicacaoRequest) (*domain.ComunicacaoDTO, error) {
	if !req.EmpresaOrigemID.Valid || !req.EmpresaDestinoID.Valid || req.Assunto == "" {
		return nil, fmt.Errorf("%w: empresa_origem_id, empresa_destino_id and assunto are required", ErrInvalidInput)
	}

	for _, id := range []int64{req.EmpresaOrigemID.Int64, req.EmpresaDestinoID.Int64} {
		if err := s.ensureEmpresa(ctx, id); err != nil {
			return nil, err
		}
	}
	if req.TrocaID.Valid {
		if _, err := s.trocaRepo.GetByID(ctx, req.TrocaID.Int64); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrTrocaReferenciaInvalida, req.TrocaID.Int64)
			}
			return nil, fmt.Errorf("failed to check troca: %w", err)
		}
	}

	comunicacao := &domain.Comunicacao{
		TrocaID:          req.TrocaID.Ptr(),
		EmpresaOrigemID:  req.EmpresaOrigemID.Int64,
		EmpresaDestinoID: req.EmpresaDestinoID.Int64,
		Assunto:          req.Assunto,
		DataContato:      req.DataContato.OrNow(s.now),
		Duracao:          nullIfEmpty(req.Duracao),
	}

	if err := s.comunicacaoRepo.Create(ctx, comunicacao); err != nil {
		return nil, fmt.Errorf("failed to create comunicacao: %w", err)
	}

	s.logger.Info("comunicacao created",
		zap.Int64("contato_id", comunicacao.ID),
		zap.String("tipo", comunicacao.Tipo()))

	dto := mapper.ToComunicacaoDTO(comunicacao)
	return &dto, nil
}

func (s *ComunicacaoService) ensureEmpresa(ctx context.Context, id int64) error {
	if _, err := s.empresaRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrEmpresaReferenciaInvalida, id)
		}
		return fmt.Errorf("failed to check empresa: %w", err)
	}
	return nil
}
