package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type healthResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Routes builds the router every stage shares: base middleware, the health
// endpoint, swagger, and the stage's own work endpoint registered by the
// caller.
func Routes(service string, logger zerolog.Logger, register func(chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResp{Status: "healthy", Service: service})
	})

	if register != nil {
		register(r)
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
