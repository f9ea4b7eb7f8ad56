package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "farminventory/docs"
	"farminventory/internal/api/item"
	"farminventory/internal/api/system"
	"farminventory/internal/pkg/logger"
	"farminventory/internal/pkg/middleware"
)

// Deps reúne o que o roteador precisa, já montado pelo main.
type Deps struct {
	Items  *item.Handler
	System *system.Handler
	DB     middleware.ConnectivityChecker
	Logger logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Recover(d.Logger))

	// Precisam vir antes de Route: o subrouter herda os dois no Mount.
	r.NotFound(d.System.NotFound)
	r.MethodNotAllowed(d.System.NotFound)

	// Rotas sem banco: nunca passam pelo gate.
	r.Get("/", d.System.Root)
	r.Get("/health", d.System.Health)
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/items", func(r chi.Router) {
		r.Use(middleware.Availability(d.DB, d.Logger))

		r.Get("/", d.Items.List)
		r.Post("/", d.Items.Create)
		// Segmento literal antes do parâmetro.
		r.Get("/low-stock", d.Items.LowStock)
		r.Get("/{id}", d.Items.Get)
		r.Put("/{id}", d.Items.Update)
		r.Delete("/{id}", d.Items.Delete)
	})

	return r
}
