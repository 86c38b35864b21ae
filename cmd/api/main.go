package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/scene-forge/scenes/internal/agents"
	"github.com/scene-forge/scenes/internal/auth"
	"github.com/scene-forge/scenes/internal/config"
	"github.com/scene-forge/scenes/internal/handlers"
	"github.com/scene-forge/scenes/internal/llm"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Starting Scenes API")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	llmClient, err := llm.NewClient(llm.Config{
		APIKey:      cfg.GeminiAPIKey,
		APIEndpoint: cfg.GeminiAPIEndpoint,
		ModelText:   cfg.GeminiModelText,
		ModelVision: cfg.GeminiModelVision,
		ModelImage:  cfg.GeminiModelImage,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM client")
	}

	h := handlers.NewHandler(
		agents.NewPromptAgent(llmClient),
		agents.NewStyleAgent(llmClient),
		agents.NewImageAgent(llmClient),
	)

	authService := auth.NewService(cfg.APIAuthToken)

	r := mux.NewRouter()
	r.Use(handlers.RequestID)
	r.HandleFunc("/healthz", h.Health).Methods("GET")

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(authService.Middleware)
	api.HandleFunc("/scene-prompts", h.GenerateScenePrompts).Methods("POST")
	api.HandleFunc("/style", h.AnalyzeStyle).Methods("POST")
	api.HandleFunc("/images", h.GenerateImage).Methods("POST")

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down API...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("API exited")
}
