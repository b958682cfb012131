package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ai-interview-server/internal/api"
	"ai-interview-server/internal/auth"
	"ai-interview-server/internal/config"
	"ai-interview-server/internal/interview"
	"ai-interview-server/internal/metrics"
	"ai-interview-server/internal/progress"
	"ai-interview-server/internal/resume"
	"ai-interview-server/internal/server"
	"ai-interview-server/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	appCfg := config.LoadAppConfig()
	if err := appCfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	cfg, err := config.Load("config/interview.yaml")
	if err != nil {
		log.Fatalf("loading interview configuration: %v", err)
	}

	store, err := storage.Open(appCfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("opening session store: %v", err)
	}
	defer store.Close()

	// Services are constructed once here and injected everywhere, so tests
	// can substitute fakes for the store and the gateway.
	gateway := api.NewGeminiClient(
		appCfg.Gemini.APIKey,
		appCfg.Gemini.Model,
		appCfg.Gemini.Temperature,
		appCfg.Gemini.Timeout,
	)
	transcriber := api.NewTranscriptionClient(appCfg.Assembly.APIKey)

	m := metrics.NewMetrics()
	authService := auth.NewService(store, appCfg.Auth.JWTSecret, appCfg.Auth.TokenTTL, appCfg.Auth.BcryptCost)
	interviewService := interview.NewService(store, gateway, cfg, m)
	progressService := progress.NewService(store, gateway, cfg)
	resumeService := resume.NewService(gateway)

	handler := server.NewHandler(
		logger,
		authService,
		interviewService,
		progressService,
		resumeService,
		transcriber,
		store,
		m,
	)

	router := server.SetupRoutes(handler, authService, appCfg.Server)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", appCfg.Server.Port),
		Handler:      router,
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "model", appCfg.Gemini.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
