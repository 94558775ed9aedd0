package console

import (
	"context"
	"sync"
	"time"

	"github.com/ecostock/ecostock-api/internal/domain"
	"go.uber.org/zap"

	// Embedded zone database so America/Sao_Paulo resolves on minimal images
	_ "time/tzdata"
)

const greetingZone = "America/Sao_Paulo"

// activeTrocaStatuses are the statuses listed as active on the dashboard
var activeTrocaStatuses = map[string]bool{
	"ativa":        true,
	"pendente":     true,
	"Em andamento": true,
}

// Dashboard is the overview page model
type Dashboard struct {
	Saudacao        string
	TotalProdutos   int64
	TotalEmpresas   int
	TotalCategorias int
	TrocasUltimoMes int
	TrocasAtivas    []domain.Troca
	Categorias      []domain.CategoriaResumo
	// Falhas lists the data sets that could not be loaded
	Falhas []string
}

// Greeting picks the salutation by the hour in São Paulo
func Greeting(now time.Time, nome string) string {
	if loc, err := time.LoadLocation(greetingZone); err == nil {
		now = now.In(loc)
	}
	if nome == "" {
		nome = "Admin"
	}
	switch h := now.Hour(); {
	case h < 12:
		return "Bom dia, " + nome + "!"
	case h < 18:
		return "Boa tarde, " + nome + "!"
	default:
		return "Boa noite, " + nome + "!"
	}
}

// BuildDashboard computes the aggregates from the three lists
func BuildDashboard(now time.Time, nome string, categorias []domain.CategoriaResumo, empresas []domain.Empresa, trocas []domain.Troca) Dashboard {
	d := Dashboard{
		Saudacao:        Greeting(now, nome),
		TotalEmpresas:   len(empresas),
		TotalCategorias: len(categorias),
		Categorias:      categorias,
		TrocasAtivas:    []domain.Troca{},
	}

	for _, c := range categorias {
		d.TotalProdutos += c.Produtos
	}

	umMesAtras := now.AddDate(0, -1, 0)
	for _, t := range trocas {
		if !t.Data.Before(umMesAtras) {
			d.TrocasUltimoMes++
		}
		if activeTrocaStatuses[t.Status] {
			d.TrocasAtivas = append(d.TrocasAtivas, t)
		}
	}
	return d
}

// loadDashboard fetches the three lists concurrently. A failed fetch leaves
// its slot empty and is reported without discarding the others.
func (c *Console) loadDashboard(ctx context.Context, nome string) Dashboard {
	var (
		wg         sync.WaitGroup
		categorias []domain.CategoriaResumo
		empresas   []domain.Empresa
		trocas     []domain.Troca
		errs       [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		categorias, errs[0] = c.api.ListCategorias(ctx)
	}()
	go func() {
		defer wg.Done()
		empresas, errs[1] = c.api.ListEmpresas(ctx)
	}()
	go func() {
		defer wg.Done()
		trocas, errs[2] = c.api.ListTrocas(ctx)
	}()
	wg.Wait()

	d := BuildDashboard(c.now(), nome, categorias, empresas, trocas)
	for i, label := range []string{"categorias", "empresas", "trocas"} {
		if errs[i] != nil {
			c.logger.Warn("dashboard fetch failed", zap.String("dataset", label), zap.Error(errs[i]))
			d.Falhas = append(d.Falhas, label)
		}
	}
	return d
}
