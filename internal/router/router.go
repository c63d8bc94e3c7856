package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/prajwalbhunte45/chatbot-project/internal/handlers"
	"github.com/prajwalbhunte45/chatbot-project/internal/metrics"
	"github.com/prajwalbhunte45/chatbot-project/internal/middleware"
)

func New(
	log *logrus.Logger,
	pageHandler *handlers.PageHandler,
	chatHandler *handlers.ChatHandler,
	collector *metrics.Collector,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	// ──── Chat page ────
	r.Get("/", pageHandler.Index)
	r.Method(http.MethodGet, "/static/*", pageHandler.Static())

	// ──── Chat relay ────
	r.Post("/chat", chatHandler.Chat)

	return r
}
