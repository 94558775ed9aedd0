package console

import (
	"net/http"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
)

type categoriasPage struct {
	Categorias []domain.CategoriaResumo
	Query      string
}

// CategoriasPage lists categories with their company aggregates
func (c *Console) CategoriasPage(w http.ResponseWriter, r *http.Request) {
	c.renderCategorias(w, r, http.StatusOK, newViewState(), nil)
}

// CreateCategoria submits the create form
func (c *Console) CreateCategoria(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var created *domain.Categoria

	err := state.Do("Categoria criada com sucesso.", func() error {
		nome, descricao, err := parseCategoriaForm(r)
		if err != nil {
			return err
		}
		created, err = c.api.CreateCategoria(r.Context(), domain.CreateCategoriaRequest{Nome: nome, Descricao: descricao})
		return err
	})
	c.renderCategorias(w, r, failureStatus(err), state, created)
}

// UpdateCategoria renames a category. The API moves the companies along.
func (c *Console) UpdateCategoria(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var updated *domain.Categoria

	err := state.Do("Categoria atualizada com sucesso.", func() error {
		id, ok := pathID(r)
		if !ok {
			return errIDInvalido
		}
		nome, descricao, err := parseCategoriaForm(r)
		if err != nil {
			return err
		}
		updated, err = c.api.UpdateCategoria(r.Context(), id, domain.UpdateCategoriaRequest{Nome: nome, Descricao: descricao})
		return err
	})
	c.renderCategorias(w, r, failureStatus(err), state, updated)
}

// DeleteCategoria removes a category
func (c *Console) DeleteCategoria(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	err := state.Do("Categoria excluída com sucesso.", func() error {
		id, ok := pathID(r)
		if !ok {
			return errIDInvalido
		}
		return c.api.DeleteCategoria(r.Context(), id)
	})
	c.renderCategorias(w, r, failureStatus(err), state, nil)
}

// renderCategorias fetches the list so aggregates reflect the last action.
// The echoed row keeps its existing aggregates until the next fetch.
func (c *Console) renderCategorias(w http.ResponseWriter, r *http.Request, status int, state *ViewState, echoed *domain.Categoria) {
	page := categoriasPage{Query: r.URL.Query().Get("q")}

	categorias, err := c.api.ListCategorias(r.Context())
	if err != nil {
		c.loadFailed(state, "categorias", err)
	}
	if echoed != nil {
		row := domain.CategoriaResumo{ID: echoed.ID, Nome: echoed.Nome, Descricao: echoed.Descricao}
		for _, existing := range categorias {
			if existing.ID == echoed.ID {
				row.Empresas, row.Produtos = existing.Empresas, existing.Produtos
			}
		}
		categorias = upsert(categorias, row, func(c domain.CategoriaResumo) int64 { return c.ID })
	}
	page.Categorias = FilterCategorias(categorias, page.Query)

	c.render(w, r, pageCategorias, status, state, page)
}

func parseCategoriaForm(r *http.Request) (string, *string, error) {
	if err := r.ParseForm(); err != nil {
		return "", nil, formError("Formulário inválido.")
	}
	nome := strings.TrimSpace(r.PostForm.Get("nome"))
	if err := validateCategoria(nome); err != nil {
		return "", nil, err
	}
	return nome, optionalString(strings.TrimSpace(r.PostForm.Get("descricao"))), nil
}
