package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/plano-leitura/book"
)

// Handlers sets up the reading plan API routes.
// metricsHandler is optional; pass nil to skip the /metrics endpoint.
func Handlers(ctx context.Context, bookService book.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("plano-leitura", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	/* O frontend estático pode ser servido de outra origem, como no deploy
	 * original (frontend e API em domínios separados) */
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit())

	// Liveness
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API de Leitura funcionando!"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/livros", getLivros(bookService))
		r.Method(http.MethodPost, "/livros", postLivro(bookService))
		r.Method(http.MethodPut, "/livros/{id}", putLivro(bookService))
		r.Method(http.MethodDelete, "/livros/{id}", deleteLivro(bookService))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Cliente estático
	r.Handle("/app/*", http.StripPrefix("/app/", http.FileServer(http.Dir("web"))))

	return r
}
