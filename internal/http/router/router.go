package router

import (
	"net/http"

	"github.com/ecostock/ecostock-api/internal/config"
	"github.com/ecostock/ecostock-api/internal/console"
	"github.com/ecostock/ecostock-api/internal/http/handler"
	"github.com/ecostock/ecostock-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	rateLimiter        *middleware.RateLimiter
	healthHandler      *handler.HealthHandler
	categoriaHandler   *handler.CategoriaHandler
	empresaHandler     *handler.EmpresaHandler
	trocaHandler       *handler.TrocaHandler
	comunicacaoHandler *handler.ComunicacaoHandler
	authHandler        *handler.AuthHandler
	console            *console.Console
}

// NewRouter wires the handlers. A nil console leaves the admin pages unmounted.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	categoriaHandler *handler.CategoriaHandler,
	empresaHandler *handler.EmpresaHandler,
	trocaHandler *handler.TrocaHandler,
	comunicacaoHandler *handler.ComunicacaoHandler,
	authHandler *handler.AuthHandler,
	adminConsole *console.Console,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		rateLimiter:        rateLimiter,
		healthHandler:      healthHandler,
		categoriaHandler:   categoriaHandler,
		empresaHandler:     empresaHandler,
		trocaHandler:       trocaHandler,
		comunicacaoHandler: comunicacaoHandler,
		authHandler:        authHandler,
		console:            adminConsole,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness and readiness checks
	r.Get("/health", rt.healthHandler.Live)
	r.Get("/health/db", rt.healthHandler.Database)
	r.Get("/db-test", rt.healthHandler.DBTest)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", rt.healthHandler.Root)

		r.Post("/login", rt.authHandler.Login)

		// Categories
		r.Route("/categorias", func(r chi.Router) {
			r.Get("/", rt.categoriaHandler.List)
			r.Post("/", rt.categoriaHandler.Create)
			r.Put("/{id}", rt.categoriaHandler.Update)
			r.Delete("/{id}", rt.categoriaHandler.Delete)
		})

		// Companies have no delete endpoint
		r.Route("/empresas", func(r chi.Router) {
			r.Get("/", rt.empresaHandler.List)
			r.Post("/", rt.empresaHandler.Create)
			r.Get("/{id}", rt.empresaHandler.GetByID)
			r.Put("/{id}", rt.empresaHandler.Update)
		})

		// Exchanges
		r.Route("/trocas", func(r chi.Router) {
			r.Get("/", rt.trocaHandler.List)
			r.Post("/", rt.trocaHandler.Create)
			r.Get("/{id}", rt.trocaHandler.GetByID)
			r.Put("/{id}", rt.trocaHandler.Update)
			r.Delete("/{id}", rt.trocaHandler.Delete)
		})

		// Communications are append-only
		r.Route("/comunicacoes", func(r chi.Router) {
			r.Get("/", rt.comunicacaoHandler.List)
			r.Post("/", rt.comunicacaoHandler.Create)
			r.Get("/{id}", rt.comunicacaoHandler.GetByID)
		})
	})

	if rt.console != nil {
		r.Group(rt.console.Register)
	}

	return r
}
