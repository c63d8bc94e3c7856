package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prajwalbhunte45/chatbot-project/internal/config"
	"github.com/prajwalbhunte45/chatbot-project/internal/handlers"
	"github.com/prajwalbhunte45/chatbot-project/internal/logger"
	"github.com/prajwalbhunte45/chatbot-project/internal/metrics"
	"github.com/prajwalbhunte45/chatbot-project/internal/router"
	"github.com/prajwalbhunte45/chatbot-project/internal/services"
	"github.com/prajwalbhunte45/chatbot-project/web"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("✗ Configuration error: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Env)
	log.Info("🚀 Starting chat relay...")
	log.Info("✓ Environment variables loaded")

	// ──── Step 2: Initialize Model Provider ────
	gen, err := newGenerator(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("✗ %s client initialization failed: %v", cfg.Provider, err)
	}
	defer gen.Close()
	log.WithField("provider", gen.Name()).Info("✓ Model client initialized")

	// ──── Step 3: Wire Relay and Handlers ────
	collector := metrics.NewCollector()
	relay := services.NewRelay(gen, log, collector)

	pageHandler := handlers.NewPageHandler(web.IndexHTML, web.Static())
	chatHandler := handlers.NewChatHandler(relay)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(log, pageHandler, chatHandler, collector)

	// No WriteTimeout: provider calls are unbounded and every request must
	// still get its reply written.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Shutdown did not complete cleanly")
		}
		close(idle)
	}()

	log.Infof("✓ Chat relay ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-idle
}

func newGenerator(ctx context.Context, cfg *config.Config, log *logrus.Logger) (services.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return services.NewOpenAIService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	}
}
