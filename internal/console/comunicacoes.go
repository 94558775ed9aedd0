package console

import (
	"net/http"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
)

type comunicacoesPage struct {
	Comunicacoes []domain.ComunicacaoDetalheDTO
	Filter       ComunicacaoFilter
	Empresas     []domain.Empresa
	Trocas       []domain.Troca
	Selected     *domain.ComunicacaoDetalheDTO
}

// ComunicacoesPage lists communications. With an id in the path the details
// panel is shown.
func (c *Console) ComunicacoesPage(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var selected *domain.ComunicacaoDetalheDTO
	if id, ok := pathID(r); ok {
		_ = state.Do("", func() error {
			var err error
			selected, err = c.api.GetComunicacao(r.Context(), id)
			return err
		})
	}
	c.renderComunicacoes(w, r, http.StatusOK, state, selected, nil)
}

// CreateComunicacao submits the create form
func (c *Console) CreateComunicacao(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var created *domain.ComunicacaoDTO

	err := state.Do("Comunicação registrada com sucesso.", func() error {
		req, err := parseComunicacaoForm(r)
		if err != nil {
			return err
		}
		created, err = c.api.CreateComunicacao(r.Context(), req)
		return err
	})
	c.renderComunicacoes(w, r, failureStatus(err), state, nil, created)
}

func (c *Console) renderComunicacoes(w http.ResponseWriter, r *http.Request, status int, state *ViewState, selected *domain.ComunicacaoDetalheDTO, echoed *domain.ComunicacaoDTO) {
	q := r.URL.Query()
	page := comunicacoesPage{
		Filter:   ComunicacaoFilter{Query: q.Get("q"), Tipo: q.Get("tipo")},
		Selected: selected,
	}

	empresas, err := c.api.ListEmpresas(r.Context())
	if err != nil {
		c.loadFailed(state, "empresas", err)
	}
	page.Empresas = empresas

	comunicacoes, err := c.api.ListComunicacoes(r.Context())
	if err != nil {
		c.loadFailed(state, "comunicações", err)
	}
	if echoed != nil {
		comunicacoes = upsert(comunicacoes, detalheFromEcho(echoed, empresas), func(c domain.ComunicacaoDetalheDTO) int64 { return c.ID })
	}
	page.Comunicacoes = FilterComunicacoes(comunicacoes, page.Filter)

	trocas, err := c.api.ListTrocas(r.Context())
	if err != nil {
		c.loadFailed(state, "trocas", err)
	}
	page.Trocas = trocas

	c.render(w, r, pageComunicacoes, status, state, page)
}

// detalheFromEcho resolves the company names of a created communication
func detalheFromEcho(created *domain.ComunicacaoDTO, empresas []domain.Empresa) domain.ComunicacaoDetalheDTO {
	nomes := make(map[int64]string, len(empresas))
	for _, e := range empresas {
		nomes[e.ID] = e.Nome
	}
	return domain.ComunicacaoDetalheDTO{
		ID:             created.ID,
		TrocaID:        created.TrocaID,
		Assunto:        created.Assunto,
		DataContato:    created.DataContato,
		Duracao:        created.Duracao,
		EmpresaOrigem:  nomes[created.EmpresaOrigemID],
		EmpresaDestino: nomes[created.EmpresaDestinoID],
		Tipo:           created.Tipo,
	}
}

func parseComunicacaoForm(r *http.Request) (domain.CreateComunicacaoRequest, error) {
	if err := r.ParseForm(); err != nil {
		return domain.CreateComunicacaoRequest{}, formError("Formulário inválido.")
	}
	get := func(key string) string { return strings.TrimSpace(r.PostForm.Get(key)) }

	var req domain.CreateComunicacaoRequest
	var err error
	if req.EmpresaOrigemID, err = domain.ParseNullableInt64(get("empresa_origem_id")); err != nil {
		return req, errIDInvalido
	}
	if req.EmpresaDestinoID, err = domain.ParseNullableInt64(get("empresa_destino_id")); err != nil {
		return req, errIDInvalido
	}
	if req.TrocaID, err = domain.ParseNullableInt64(get("troca_id")); err != nil {
		return req, errIDInvalido
	}
	if req.DataContato, err = domain.ParseNullableTime(get("data_contato")); err != nil {
		return req, errDataInvalida
	}
	req.Assunto = get("assunto")
	req.Duracao = optionalString(get("duracao"))

	if err := validateComunicacao(&req); err != nil {
		return req, err
	}
	return req, nil
}
