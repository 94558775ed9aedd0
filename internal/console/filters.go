package console

import (
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
)

// FilterAll disables an exact-match select filter
const FilterAll = "todos"

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesSelect(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// FilterEmpresas matches the company name
func FilterEmpresas(empresas []domain.Empresa, query string) []domain.Empresa {
	out := make([]domain.Empresa, 0, len(empresas))
	for _, e := range empresas {
		if containsFold(e.Nome, query) {
			out = append(out, e)
		}
	}
	return out
}

// FilterCategorias matches the category name
func FilterCategorias(categorias []domain.CategoriaResumo, query string) []domain.CategoriaResumo {
	out := make([]domain.CategoriaResumo, 0, len(categorias))
	for _, c := range categorias {
		if containsFold(c.Nome, query) {
			out = append(out, c)
		}
	}
	return out
}

// TrocaFilter holds the exchange page search inputs
type TrocaFilter struct {
	Query       string
	Solicitante string
	Receptora   string
}

// FilterTrocas matches the query against either company name, then applies
// the exact company selects.
func FilterTrocas(trocas []domain.Troca, f TrocaFilter) []domain.Troca {
	out := make([]domain.Troca, 0, len(trocas))
	for _, t := range trocas {
		if !containsFold(t.EmpresaSolicitante, f.Query) && !containsFold(t.EmpresaReceptora, f.Query) {
			continue
		}
		if !matchesSelect(f.Solicitante, t.EmpresaSolicitante) || !matchesSelect(f.Receptora, t.EmpresaReceptora) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ComunicacaoFilter holds the communication page search inputs
type ComunicacaoFilter struct {
	Query string
	Tipo  string
}

// FilterComunicacoes matches the query against origin, destination or
// subject and keeps only the selected type.
func FilterComunicacoes(comunicacoes []domain.ComunicacaoDetalheDTO, f ComunicacaoFilter) []domain.ComunicacaoDetalheDTO {
	out := make([]domain.ComunicacaoDetalheDTO, 0, len(comunicacoes))
	for _, c := range comunicacoes {
		if !containsFold(c.EmpresaOrigem, f.Query) &&
			!containsFold(c.EmpresaDestino, f.Query) &&
			!containsFold(c.Assunto, f.Query) {
			continue
		}
		if !matchesSelect(f.Tipo, domain.TipoFromDuracao(c.Duracao)) {
			continue
		}
		out = append(out, c)
	}
	return out
}
