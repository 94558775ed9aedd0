// Package console serves the server-rendered admin pages. Every page talks to
// the REST API through the typed client, one request per action.
package console

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/ecostock/ecostock-api/internal/client"
	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// API is the REST surface the console consumes. *client.Client implements it.
type API interface {
	Login(ctx context.Context, login, senha string) (*domain.UserDTO, error)

	ListCategorias(ctx context.Context) ([]domain.CategoriaResumo, error)
	CreateCategoria(ctx context.Context, req domain.CreateCategoriaRequest) (*domain.Categoria, error)
	UpdateCategoria(ctx context.Context, id int64, req domain.UpdateCategoriaRequest) (*domain.Categoria, error)
	DeleteCategoria(ctx context.Context, id int64) error

	ListEmpresas(ctx context.Context) ([]domain.Empresa, error)
	GetEmpresa(ctx context.Context, id int64) (*domain.Empresa, error)
	CreateEmpresa(ctx context.Context, req domain.CreateEmpresaRequest) (*domain.Empresa, error)
	UpdateEmpresa(ctx context.Context, id int64, req domain.UpdateEmpresaRequest) (*domain.Empresa, error)

	ListTrocas(ctx context.Context) ([]domain.Troca, error)
	GetTroca(ctx context.Context, id int64) (*domain.Troca, error)
	CreateTroca(ctx context.Context, req domain.CreateTrocaRequest) (*domain.Troca, error)
	UpdateTrocaStatus(ctx context.Context, id int64, status string) (*domain.Troca, error)
	DeleteTroca(ctx context.Context, id int64) error

	ListComunicacoes(ctx context.Context) ([]domain.ComunicacaoDetalheDTO, error)
	GetComunicacao(ctx context.Context, id int64) (*domain.ComunicacaoDetalheDTO, error)
	CreateComunicacao(ctx context.Context, req domain.CreateComunicacaoRequest) (*domain.ComunicacaoDTO, error)
}

var _ API = (*client.Client)(nil)

const (
	pageLogin        = "login"
	pageDashboard    = "dashboard"
	pageEmpresas     = "empresas"
	pageCategorias   = "categorias"
	pageTrocas       = "trocas"
	pageComunicacoes = "comunicacoes"
)

var pageTitles = map[string]string{
	pageLogin:        "EcoStock",
	pageDashboard:    "Dashboard",
	pageEmpresas:     "Empresas",
	pageCategorias:   "Categorias",
	pageTrocas:       "Trocas",
	pageComunicacoes: "Comunicações",
}

type navItem struct {
	Name string
	Path string
}

var navItems = []navItem{
	{Name: "Dashboard", Path: "/dashboard"},
	{Name: "Empresas", Path: "/empresas"},
	{Name: "Categorias", Path: "/categorias"},
	{Name: "Trocas", Path: "/trocas"},
	{Name: "Comunicações", Path: "/comunicacoes"},
}

// pageData is what every template receives
type pageData struct {
	Title   string
	Active  string
	Nav     []navItem
	User    *domain.UserDTO
	State   *ViewState
	Content any
}

type userContextKey struct{}

// Console renders the admin pages
type Console struct {
	api      API
	sessions *Sessions
	pages    map[string]*template.Template
	logger   *zap.Logger
	now      func() time.Time
}

// New parses the embedded templates and builds the console
func New(api API, sessions *Sessions, logger *zap.Logger) (*Console, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Console{
		api:      api,
		sessions: sessions,
		pages:    pages,
		logger:   logger,
		now:      time.Now,
	}, nil
}

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006")
	},
	"formatDateTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006 15:04")
	},
	"deref": func(s *string) string {
		if s == nil || *s == "" {
			return "-"
		}
		return *s
	},
	"value": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"tipo": func(duracao *string) string {
		return domain.TipoFromDuracao(duracao)
	},
	"idOrDash": func(id *int64) string {
		if id == nil {
			return "-"
		}
		return strconv.FormatInt(*id, 10)
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageTitles))
	for name := range pageTitles {
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// Register mounts the console routes on r
func (c *Console) Register(r chi.Router) {
	r.Get("/", c.LoginPage)
	r.Post("/login", c.Login)
	r.Post("/logout", c.Logout)

	r.Group(func(r chi.Router) {
		r.Use(c.requireSession)

		r.Get("/dashboard", c.DashboardPage)

		r.Get("/empresas", c.EmpresasPage)
		r.Post("/empresas", c.CreateEmpresa)
		r.Get("/empresas/{id}", c.EmpresasPage)
		r.Post("/empresas/{id}", c.UpdateEmpresa)

		r.Get("/categorias", c.CategoriasPage)
		r.Post("/categorias", c.CreateCategoria)
		r.Post("/categorias/{id}", c.UpdateCategoria)
		r.Post("/categorias/{id}/delete", c.DeleteCategoria)

		r.Get("/trocas", c.TrocasPage)
		r.Post("/trocas", c.CreateTroca)
		r.Get("/trocas/{id}", c.TrocasPage)
		r.Post("/trocas/{id}/status", c.UpdateTrocaStatus)
		r.Post("/trocas/{id}/delete", c.DeleteTroca)

		r.Get("/comunicacoes", c.ComunicacoesPage)
		r.Post("/comunicacoes", c.CreateComunicacao)
		r.Get("/comunicacoes/{id}", c.ComunicacoesPage)
	})
}

// Handler returns the console as a standalone router
func (c *Console) Handler() http.Handler {
	r := chi.NewRouter()
	c.Register(r)
	return r
}

// requireSession sends visitors without a valid marker back to the login page
func (c *Console) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := c.sessions.Read(r)
		if err != nil {
			if !errors.Is(err, errNoSession) {
				c.sessions.Clear(w)
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *domain.UserDTO {
	user, _ := r.Context().Value(userContextKey{}).(*domain.UserDTO)
	return user
}

func (c *Console) render(w http.ResponseWriter, r *http.Request, page string, status int, state *ViewState, content any) {
	tmpl, ok := c.pages[page]
	if !ok {
		c.logger.Error("unknown console page", zap.String("page", page))
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:   pageTitles[page],
		Active:  "/" + page,
		Nav:     navItems,
		User:    currentUser(r),
		State:   state,
		Content: content,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		c.logger.Error("failed to render console page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// failureStatus picks the response code for a page rendered after a failed action
func failureStatus(err error) int {
	var apiErr *client.APIError
	var formErr formError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &apiErr):
		return apiErr.Status
	case errors.As(err, &formErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// loadFailed records a list fetch failure on state
func (c *Console) loadFailed(state *ViewState, dataset string, err error) {
	c.logger.Warn("console fetch failed", zap.String("dataset", dataset), zap.Error(err))
	if state.Failed() {
		return
	}
	state.Fail("Erro ao carregar " + dataset + ".")
}

func pathID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// upsert replaces the element matching item's id, or prepends item
func upsert[T any](list []T, item T, id func(T) int64) []T {
	for i := range list {
		if id(list[i]) == id(item) {
			list[i] = item
			return list
		}
	}
	return append([]T{item}, list...)
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
