package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/draftwise/draft-coach/internal/registry"
	"github.com/draftwise/draft-coach/internal/ws"
)

func SetupRoutes(reg *registry.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)

	r.Route("/series", func(r chi.Router) {
		r.Post("/", CreateSeries(reg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", GetSeries(reg))
			r.Delete("/", DeleteSeries(reg))
			r.Post("/actions", ObserveAction(reg))
			r.Post("/result", RecordResult(reg))
			r.Get("/forecast", GetForecast(reg))
			r.Post("/recommend/picks", RecommendPicks(reg))
			r.Post("/recommend/bans", RecommendBans(reg))
			r.Get("/evaluation", GetEvaluation(reg))
			r.Get("/live", ws.Handler(reg))
		})
	})

	return r
}
