package console

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type loginPage struct {
	Login string
}

// LoginPage shows the login form, or skips to the dashboard for a live session
func (c *Console) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := c.sessions.Read(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	c.render(w, r, pageLogin, http.StatusOK, newViewState(), loginPage{})
}

// Login checks the credentials against the API and sets the session marker
func (c *Console) Login(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	if err := r.ParseForm(); err != nil {
		state.Fail("Formulário inválido.")
		c.render(w, r, pageLogin, http.StatusBadRequest, state, loginPage{})
		return
	}

	login := strings.TrimSpace(r.PostForm.Get("login"))
	senha := r.PostForm.Get("senha")

	err := state.Do("", func() error {
		user, err := c.api.Login(r.Context(), login, senha)
		if err != nil {
			return err
		}
		return c.sessions.Issue(w, user)
	})
	if err != nil {
		c.logger.Info("console login rejected", zap.String("login", login), zap.Error(err))
		c.render(w, r, pageLogin, failureStatus(err), state, loginPage{Login: login})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session marker
func (c *Console) Logout(w http.ResponseWriter, r *http.Request) {
	c.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DashboardPage renders the overview
func (c *Console) DashboardPage(w http.ResponseWriter, r *http.Request) {
	state := newViewState()
	nome := ""
	if user := currentUser(r); user != nil {
		nome = user.Nome
	}

	d := c.loadDashboard(r.Context(), nome)
	if len(d.Falhas) > 0 {
		state.Fail("Erro ao carregar " + strings.Join(d.Falhas, ", ") + ".")
	}
	c.render(w, r, pageDashboard, http.StatusOK, state, d)
}
