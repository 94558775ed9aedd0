package console

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "console-test-secret"

func strPtr(s string) *string { return &s }

func setupConsole(t *testing.T) (*Console, *fakeAPI, http.Handler) {
	t.Helper()
	api := newFakeAPI()
	sessions := NewSessions(testSecret, time.Hour, false)
	c, err := New(api, sessions, zap.NewNop())
	require.NoError(t, err)
	return c, api, c.Handler()
}

func sessionCookie(t *testing.T, c *Console) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, c.sessions.Issue(rec, &domain.UserDTO{ID: 1, Nome: "Maria", Login: "admin"}))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func get(t *testing.T, h http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConsole_PagesRequireSession(t *testing.T) {
	_, _, h := setupConsole(t)

	for _, path := range []string{"/dashboard", "/empresas", "/categorias", "/trocas", "/comunicacoes"} {
		rec := get(t, h, path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestConsole_Login(t *testing.T) {
	t.Run("valid credentials set the marker", func(t *testing.T) {
		c, _, h := setupConsole(t)

		rec := postForm(t, h, "/login", url.Values{"login": {"admin"}, "senha": {"secret"}}, nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		user, err := c.sessions.Read(req)
		require.NoError(t, err)
		assert.Equal(t, "Maria", user.Nome)
	})

	t.Run("invalid credentials show the server message", func(t *testing.T) {
		_, _, h := setupConsole(t)

		rec := postForm(t, h, "/login", url.Values{"login": {"admin"}, "senha": {"wrong"}}, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Login ou senha inválidos")
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("login page redirects a live session", func(t *testing.T) {
		c, _, h := setupConsole(t)
		rec := get(t, h, "/", sessionCookie(t, c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})
}

func TestConsole_Logout(t *testing.T) {
	c, _, h := setupConsole(t)

	rec := postForm(t, h, "/logout", nil, sessionCookie(t, c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestConsole_Dashboard(t *testing.T) {
	c, api, h := setupConsole(t)
	c.now = func() time.Time { return time.Date(2025, 5, 20, 13, 0, 0, 0, time.UTC) }

	api.categorias = []domain.CategoriaResumo{
		{ID: 1, Nome: "Metal", Empresas: 1, Produtos: 12},
		{ID: 2, Nome: "Papel", Empresas: 1, Produtos: 8},
	}
	api.empresas = []domain.Empresa{{ID: 1, Nome: "Acme"}, {ID: 2, Nome: "Beta"}}
	api.trocas = []domain.Troca{
		{ID: 1, EmpresaSolicitante: "Acme", EmpresaReceptora: "Beta", Status: "pendente", Data: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, EmpresaSolicitante: "Beta", EmpresaReceptora: "Acme", Status: "Concluída", Data: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	rec := get(t, h, "/dashboard", sessionCookie(t, c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Bom dia, Maria!")
	assert.Contains(t, body, "<strong>20</strong>")
	assert.Contains(t, body, "Metal")
	assert.NotContains(t, body, "notice failure")
}

func TestConsole_DashboardPartialFailure(t *testing.T) {
	c, api, h := setupConsole(t)
	api.categorias = []domain.CategoriaResumo{{ID: 1, Nome: "Metal", Produtos: 3}}
	api.failLists["ListTrocas"] = errors.New("connection refused")

	rec := get(t, h, "/dashboard", sessionCookie(t, c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Erro ao carregar trocas.")
	assert.Contains(t, body, "Metal")
}

func TestConsole_EmpresasSearchAndCreate(t *testing.T) {
	c, api, h := setupConsole(t)
	cookie := sessionCookie(t, c)
	api.empresas = []domain.Empresa{{ID: 1, Nome: "Acme Reciclagem"}, {ID: 2, Nome: "Beta Papel"}}
	api.categorias = []domain.CategoriaResumo{{ID: 1, Nome: "Metal"}}

	rec := get(t, h, "/empresas?q=acme", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Reciclagem")
	assert.NotContains(t, rec.Body.String(), "Beta Papel")
	assert.Contains(t, rec.Body.String(), `<option value="Metal"`)

	rec = postForm(t, h, "/empresas", url.Values{
		"nome": {"Gama"}, "cnpj": {"11"}, "telefone": {"1199"}, "ramo": {"Metal"}, "produtos": {"4"},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Empresa criada com sucesso.")
	assert.Contains(t, rec.Body.String(), "Gama")
}

func TestConsole_EmpresaFormValidation(t *testing.T) {
	c, api, h := setupConsole(t)

	rec := postForm(t, h, "/empresas", url.Values{"nome": {"Gama"}}, sessionCookie(t, c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nome, CNPJ e telefone são obrigatórios.")
	assert.False(t, api.called("CreateEmpresa"))

	rec = postForm(t, h, "/empresas", url.Values{
		"nome": {"Gama"}, "cnpj": {"11"}, "telefone": {"1199"}, "produtos": {"-1"},
	}, sessionCookie(t, c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, api.called("CreateEmpresa"))
}

func TestConsole_EmpresaEditPrefill(t *testing.T) {
	c, api, h := setupConsole(t)
	api.empresas = []domain.Empresa{{ID: 7, Nome: "Acme", CNPJ: "00.1", Telefone: "11", Ramo: strPtr("Metal")}}
	api.categorias = []domain.CategoriaResumo{{ID: 1, Nome: "Metal"}}

	rec := get(t, h, "/empresas/7", sessionCookie(t, c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/empresas/7"`)
	assert.Contains(t, body, `<option value="Metal" selected>`)

	rec = get(t, h, "/empresas/99", sessionCookie(t, c))
	assert.Contains(t, rec.Body.String(), "Empresa não encontrada")
}

func TestConsole_CategoriaActions(t *testing.T) {
	c, api, h := setupConsole(t)
	cookie := sessionCookie(t, c)
	api.categorias = []domain.CategoriaResumo{{ID: 1, Nome: "Metal", Empresas: 2, Produtos: 9}}

	t.Run("rename keeps aggregates on the echoed row", func(t *testing.T) {
		rec := postForm(t, h, "/categorias/1", url.Values{"nome": {"Metais"}}, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Categoria atualizada com sucesso.")
		assert.Contains(t, body, `value="Metais"`)
		assert.Contains(t, body, "<td>9</td>")
	})

	t.Run("blank name is rejected locally", func(t *testing.T) {
		rec := postForm(t, h, "/categorias", url.Values{"nome": {"  "}}, cookie)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Nome é obrigatório.")
		assert.False(t, api.called("CreateCategoria"))
	})

	t.Run("delete of unknown id surfaces the API message", func(t *testing.T) {
		rec := postForm(t, h, "/categorias/42/delete", nil, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Categoria não encontrada")
	})

	t.Run("delete removes the row", func(t *testing.T) {
		rec := postForm(t, h, "/categorias/1/delete", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Categoria excluída com sucesso.")
		assert.Contains(t, rec.Body.String(), "Nenhuma categoria encontrada.")
	})
}

func TestConsole_TrocaActions(t *testing.T) {
	c, api, h := setupConsole(t)
	cookie := sessionCookie(t, c)
	api.trocas = []domain.Troca{
		{ID: 1, EmpresaSolicitante: "Acme", EmpresaReceptora: "Beta", Status: "pendente"},
		{ID: 2, EmpresaSolicitante: "Beta", EmpresaReceptora: "Gama", Status: "pendente"},
	}

	t.Run("status over 50 characters never reaches the API", func(t *testing.T) {
		rec := postForm(t, h, "/trocas/1/status", url.Values{"status": {strings.Repeat("a", 51)}}, cookie)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "O status não pode ter mais de 50 caracteres.")
		assert.False(t, api.called("UpdateTrocaStatus"))
	})

	t.Run("create requires both categories", func(t *testing.T) {
		rec := postForm(t, h, "/trocas", url.Values{
			"empresa_solicitante": {"Acme"}, "empresa_receptora": {"Beta"}, "categoria_solicitante": {"Metal"},
		}, cookie)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "As categorias de ambas as empresas são obrigatórias.")
	})

	t.Run("status update echoes the row", func(t *testing.T) {
		rec := postForm(t, h, "/trocas/1/status", url.Values{"status": {"Em andamento"}}, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Status atualizado com sucesso.")
		assert.Contains(t, rec.Body.String(), "<td>Em andamento</td>")
	})

	t.Run("delete drops the row", func(t *testing.T) {
		rec := postForm(t, h, "/trocas/2/delete", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Troca excluída com sucesso.")
		assert.NotContains(t, rec.Body.String(), "<td>Gama</td>")
	})

	t.Run("filters by receiving company", func(t *testing.T) {
		rec := get(t, h, "/trocas?receptora=Gama", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<td>Gama</td>")
		assert.NotContains(t, rec.Body.String(), "<td>Acme</td>")
	})
}

func TestConsole_ComunicacaoCreate(t *testing.T) {
	c, api, h := setupConsole(t)
	cookie := sessionCookie(t, c)
	api.empresas = []domain.Empresa{{ID: 1, Nome: "Acme"}, {ID: 2, Nome: "Beta"}}

	rec := postForm(t, h, "/comunicacoes", url.Values{"empresa_origem_id": {"1"}, "assunto": {"Oi"}}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Empresa origem, empresa destino e assunto são obrigatórios.")

	rec = postForm(t, h, "/comunicacoes", url.Values{
		"empresa_origem_id": {"1"}, "empresa_destino_id": {"2"}, "assunto": {"Proposta de troca"}, "duracao": {"10 min"},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Comunicação registrada com sucesso.")
	assert.Contains(t, body, "Proposta de troca")
	assert.Contains(t, body, "<td>Telefone</td>")
	assert.Contains(t, body, "<td>Acme</td><td>Beta</td>")
}

func TestConsole_ServerErrorBecomesNotification(t *testing.T) {
	c, api, h := setupConsole(t)
	api.fail = errors.New("dial tcp: connection refused")

	rec := get(t, h, "/empresas", sessionCookie(t, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao carregar empresas.")
}
