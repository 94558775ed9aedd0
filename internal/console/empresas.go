package console

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
)

type empresasPage struct {
	Empresas   []domain.Empresa
	Query      string
	Ramos      []string
	Selected   *domain.Empresa
	FormAction string
}

// EmpresasPage lists companies. With an id in the path the edit form is
// prefilled from the API.
func (c *Console) EmpresasPage(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var selected *domain.Empresa
	if id, ok := pathID(r); ok {
		_ = state.Do("", func() error {
			var err error
			selected, err = c.api.GetEmpresa(r.Context(), id)
			return err
		})
	}
	c.renderEmpresas(w, r, http.StatusOK, state, selected, nil)
}

// CreateEmpresa submits the create form
func (c *Console) CreateEmpresa(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var created *domain.Empresa

	err := state.Do("Empresa criada com sucesso.", func() error {
		form, err := parseEmpresaForm(r)
		if err != nil {
			return err
		}
		created, err = c.api.CreateEmpresa(r.Context(), domain.CreateEmpresaRequest(form))
		return err
	})
	c.renderEmpresas(w, r, failureStatus(err), state, nil, created)
}

// UpdateEmpresa submits the edit form
func (c *Console) UpdateEmpresa(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	var updated *domain.Empresa

	err := state.Do("Empresa atualizada com sucesso.", func() error {
		id, ok := pathID(r)
		if !ok {
			return errIDInvalido
		}
		form, err := parseEmpresaForm(r)
		if err != nil {
			return err
		}
		updated, err = c.api.UpdateEmpresa(r.Context(), id, domain.UpdateEmpresaRequest(form))
		return err
	})
	c.renderEmpresas(w, r, failureStatus(err), state, nil, updated)
}

func (c *Console) renderEmpresas(w http.ResponseWriter, r *http.Request, status int, state *ViewState, selected, echoed *domain.Empresa) {
	page := empresasPage{
		Query:      r.URL.Query().Get("q"),
		Selected:   selected,
		FormAction: "/empresas",
	}
	if selected != nil {
		page.FormAction = "/empresas/" + strconv.FormatInt(selected.ID, 10)
	}

	empresas, err := c.api.ListEmpresas(r.Context())
	if err != nil {
		c.loadFailed(state, "empresas", err)
	}
	if echoed != nil {
		empresas = upsert(empresas, *echoed, func(e domain.Empresa) int64 { return e.ID })
	}
	page.Empresas = FilterEmpresas(empresas, page.Query)

	categorias, err := c.api.ListCategorias(r.Context())
	if err != nil {
		c.loadFailed(state, "categorias", err)
	}
	for _, cat := range categorias {
		page.Ramos = append(page.Ramos, cat.Nome)
	}

	c.render(w, r, pageEmpresas, status, state, page)
}

// empresaForm has the same shape as both company request bodies
type empresaForm struct {
	Nome        string  `json:"nome" validate:"required"`
	CNPJ        string  `json:"cnpj" validate:"required"`
	Endereco    *string `json:"endereco"`
	Telefone    string  `json:"telefone" validate:"required"`
	Email       *string `json:"email"`
	Responsavel *string `json:"responsavel"`
	Ramo        *string `json:"ramo"`
	Produtos    *int    `json:"produtos" validate:"omitempty,gte=0"`
}

func parseEmpresaForm(r *http.Request) (empresaForm, error) {
	if err := r.ParseForm(); err != nil {
		return empresaForm{}, formError("Formulário inválido.")
	}
	get := func(key string) string { return strings.TrimSpace(r.PostForm.Get(key)) }

	form := empresaForm{
		Nome:        get("nome"),
		CNPJ:        get("cnpj"),
		Endereco:    optionalString(get("endereco")),
		Telefone:    get("telefone"),
		Email:       optionalString(get("email")),
		Responsavel: optionalString(get("responsavel")),
		Ramo:        optionalString(get("ramo")),
	}
	if err := validateEmpresa(form.Nome, form.CNPJ, form.Telefone); err != nil {
		return empresaForm{}, err
	}
	if raw := get("produtos"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return empresaForm{}, errProdutosInvalido
		}
		form.Produtos = &n
	}
	return form, nil
}
