package mapper

import (
	"github.com/ecostock/ecostock-api/internal/domain"
)

// ToComunicacaoDTO converts a stored communication to its response form
func ToComunicacaoDTO(c *domain.Comunicacao) domain.ComunicacaoDTO {
	return domain.ComunicacaoDTO{
		ID:               c.ID,
		TrocaID:          c.TrocaID,
		EmpresaOrigemID:  c.EmpresaOrigemID,
		EmpresaDestinoID: c.EmpresaDestinoID,
		Assunto:          c.Assunto,
		DataContato:      c.DataContato,
		Duracao:          c.Duracao,
		Tipo:             c.Tipo(),
	}
}

// ToComunicacaoDetalheDTO converts a joined communication row to its response form
func ToComunicacaoDetalheDTO(d *domain.ComunicacaoDetalhe) domain.ComunicacaoDetalheDTO {
	return domain.ComunicacaoDetalheDTO{
		ID:             d.ID,
		TrocaID:        d.TrocaID,
		Assunto:        d.Assunto,
		DataContato:    d.DataContato,
		Duracao:        d.Duracao,
		EmpresaOrigem:  d.EmpresaOrigem,
		EmpresaDestino: d.EmpresaDestino,
		Tipo:           domain.TipoFromDuracao(d.Duracao),
	}
}

// ToComunicacaoDetalheDTOs converts a list of joined communication rows
func ToComunicacaoDetalheDTOs(detalhes []domain.ComunicacaoDetalhe) []domain.ComunicacaoDetalheDTO {
	dtos := make([]domain.ComunicacaoDetalheDTO, len(detalhes))
	for i := range detalhes {
		dtos[i] = ToComunicacaoDetalheDTO(&detalhes[i])
	}
	return dtos
}

// ToUserDTO converts an admin account to its public form
func ToUserDTO(u *domain.Usuario) domain.UserDTO {
	return domain.UserDTO{
		ID:    u.ID,
		Nome:  u.Nome,
		Login: u.Login,
	}
}
