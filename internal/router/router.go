package router

import (
	"net/http"

	_ "cow-registry/docs"
	"cow-registry/internal/app"
	"cow-registry/internal/domain/activity"
	"cow-registry/internal/domain/cows"
	"cow-registry/internal/domain/status"
	"cow-registry/internal/middleware"
	"cow-registry/internal/view"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// AllowDebugAccount habilita X-Debug-Account (modo dev / tests).
	AllowDebugAccount bool
}

func NewRouter(a *app.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.AccountContext(opts.AllowDebugAccount))

		// Página + formularios
		view.RegisterRoutes(gr, view.Deps{
			Renderer: a.Renderer,
			Display:  a.Display,
			Commands: a.Commands,
			Status:   a.Status,
			Activity: a.Activity,
			Logger:   a.Log,
		})

		// API JSON
		cows.RegisterRoutes(gr, a.Registry, a.Sync, a.Commands)
		status.RegisterRoutes(gr, a.Status)
		activity.RegisterRoutes(gr, a.Activity)
	})

	return r
}
