package console

import (
	"net/http"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
)

// TrocaStatusOptions are the statuses offered by the exchange forms
var TrocaStatusOptions = []string{"pendente", "Em andamento", "Concluída", "Aguardando confirmação"}

type trocasPage struct {
	Trocas        []domain.Troca
	Filter        TrocaFilter
	Empresas      []string
	Categorias    []string
	StatusOptions []string
	Selected      *domain.Troca
}

// TrocasPage lists exchanges. With an id in the path the details panel is shown.
func (c *Console) TrocasPage(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var selected *domain.Troca
	if id, ok := pathID(r); ok {
		_ = state.Do("", func() error {
			var err error
			selected, err = c.api.GetTroca(r.Context(), id)
			return err
		})
	}
	c.renderTrocas(w, r, http.StatusOK, state, selected, nil, 0)
}

// CreateTroca submits the create form
func (c *Console) CreateTroca(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var created *domain.Troca

	err := state.Do("Troca criada com sucesso.", func() error {
		req, err := parseTrocaForm(r)
		if err != nil {
			return err
		}
		created, err = c.api.CreateTroca(r.Context(), req)
		return err
	})
	c.renderTrocas(w, r, failureStatus(err), state, nil, created, 0)
}

// UpdateTrocaStatus submits the status form
func (c *Console) UpdateTrocaStatus(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var updated *domain.Troca

	err := state.Do("Status atualizado com sucesso.", func() error {
		id, ok := pathID(r)
		if !ok {
			return errIDInvalido
		}
		if err := r.ParseForm(); err != nil {
			return formError("Formulário inválido.")
		}
		status := strings.TrimSpace(r.PostForm.Get("status"))
		if err := validateStatus(status); err != nil {
			return err
		}
		var err error
		updated, err = c.api.UpdateTrocaStatus(r.Context(), id, status)
		return err
	})
	c.renderTrocas(w, r, failureStatus(err), state, nil, updated, 0)
}

// DeleteTroca removes an exchange
func (c *Console) DeleteTroca(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var removed int64

	err := state.Do("Troca excluída com sucesso.", func() error {
		id, ok := pathID(r)
		if !ok {
			return errIDInvalido
		}
		if err := c.api.DeleteTroca(r.Context(), id); err != nil {
			return err
		}
		removed = id
		return nil
	})
	c.renderTrocas(w, r, failureStatus(err), state, nil, nil, removed)
}

func (c *Console) renderTrocas(w http.ResponseWriter, r *http.Request, status int, state *ViewState, selected, echoed *domain.Troca, removed int64) {
	q := r.URL.Query()
	page := trocasPage{
		Filter: TrocaFilter{
			Query:       q.Get("q"),
			Solicitante: q.Get("solicitante"),
			Receptora:   q.Get("receptora"),
		},
		StatusOptions: TrocaStatusOptions,
		Selected:      selected,
	}

	trocas, err := c.api.ListTrocas(r.Context())
	if err != nil {
		c.loadFailed(state, "trocas", err)
	}
	if echoed != nil {
		trocas = upsert(trocas, *echoed, func(t domain.Troca) int64 { return t.ID })
	}
	if removed != 0 {
		kept := trocas[:0]
		for _, t := range trocas {
			if t.ID != removed {
				kept = append(kept, t)
			}
		}
		trocas = kept
	}
	page.Trocas = FilterTrocas(trocas, page.Filter)

	empresas, err := c.api.ListEmpresas(r.Context())
	if err != nil {
		c.loadFailed(state, "empresas", err)
	}
	for _, e := range empresas {
		page.Empresas = append(page.Empresas, e.Nome)
	}

	categorias, err := c.api.ListCategorias(r.Context())
	if err != nil {
		c.loadFailed(state, "categorias", err)
	}
	for _, cat := range categorias {
		page.Categorias = append(page.Categorias, cat.Nome)
	}

	c.render(w, r, pageTrocas, status, state, page)
}

func parseTrocaForm(r *http.Request) (domain.CreateTrocaRequest, error) {
	if err := r.ParseForm(); err != nil {
		return domain.CreateTrocaRequest{}, formError("Formulário inválido.")
	}
	get := func(key string) string { return strings.TrimSpace(r.PostForm.Get(key)) }

	req := domain.CreateTrocaRequest{
		EmpresaSolicitante:   get("empresa_solicitante"),
		EmpresaReceptora:     get("empresa_receptora"),
		Status:               get("status"),
		Observacoes:          optionalString(get("observacoes")),
		CategoriaSolicitante: get("categoria_solicitante"),
		CategoriaReceptora:   get("categoria_receptora"),
	}
	data, err := domain.ParseNullableTime(get("data"))
	if err != nil {
		return domain.CreateTrocaRequest{}, errDataInvalida
	}
	req.Data = data

	if err := validateTroca(&req); err != nil {
		return domain.CreateTrocaRequest{}, err
	}
	return req, nil
}
