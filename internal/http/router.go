package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/http/export"
	"github.com/MrJamesThe3rd/gastos/internal/http/importstatement"
	gastosMiddleware "github.com/MrJamesThe3rd/gastos/internal/http/middleware"
	"github.com/MrJamesThe3rd/gastos/internal/http/rules"
	"github.com/MrJamesThe3rd/gastos/internal/http/transaction"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
	JWTSecret      string
}

func New(
	log zerolog.Logger,
	opts Options,
	importV1 *importstatement.Handler,
	ledgerV1 *transaction.Handler,
	rulesV1 *rules.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(gastosMiddleware.Logger(log))
	router.Use(middleware.Recoverer)

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(gastosMiddleware.Auth(opts.JWTSecret))

		r.Route("/import", importV1.Routes)

		r.Route("/ledger/transactions", ledgerV1.Routes)

		r.Route("/rules", func(r chi.Router) {
			rulesV1.Routes(r)
		})

		r.Route("/export", exportV1.Routes)
	})

	return router
}
