/*
Package main is the entry point for the Nutrigen application.

It is responsible for loading configuration (including an optional .env file), initializing
the global logging system, loading the user store, wiring the generative model gateway,
setting up the HTTP server, and gracefully handling operating system interrupt signals
(SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nutrigen/internal/app/account"
	"nutrigen/internal/app/gateway"
	"nutrigen/internal/app/nutrition"
	"nutrigen/internal/app/session"
	"nutrigen/internal/app/userstore"
	"nutrigen/internal/configs"
	"nutrigen/internal/handler"
	"nutrigen/internal/pkg/logx"
)

func main() {
	// A missing .env file is fine; the environment alone may carry the settings.
	envErr := godotenv.Load()

	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logx.Warn("Could not read .env file", "error", envErr.Error())
	}
	if cfg.GoogleAPIKey == "" {
		logx.Warn("GOOGLE_API_KEY is not set; feature requests will return an error message")
	}
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("user_store", cfg.UserStore).
		Str("password_storage", cfg.PasswordStorage).
		Str("gemini_model", cfg.GeminiModel).
		Dur("ai_request_timeout", cfg.AIRequestTimeout).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the user records once; every later change is written back wholesale.
	store, closeStore, err := userstore.New(ctx, cfg)
	if err != nil {
		logx.Fatal(err, "Failed to initialize user store", "user_store", cfg.UserStore)
	}
	defer closeStore()

	accounts, err := account.Load(ctx, store, account.NewPasswordPolicy(cfg.PasswordStorage))
	if err != nil {
		logx.Fatal(err, "Failed to load user records", "user_store", cfg.UserStore)
	}
	logx.Info("User records loaded", "users", accounts.Count())

	gw := gateway.New(gateway.NewGeminiGenerator(cfg.GoogleAPIKey, cfg.GeminiModel), cfg.AIRequestTimeout)

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Config:   cfg,
		Accounts: accounts,
		Planner:  nutrition.NewPlanner(gw),
		Sessions: session.NewCodec(cfg.SessionSecret, session.TokenExpiration, !cfg.IsDevelopment()),
		Views:    handler.MustViews(),
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Model calls can take well over a minute.
		WriteTimeout: writeTimeout(cfg.AIRequestTimeout),
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Nutrigen starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}

func writeTimeout(aiTimeout time.Duration) time.Duration {
	const minimum = 180 * time.Second
	if aiTimeout+30*time.Second > minimum {
		return aiTimeout + 30*time.Second
	}
	return minimum
}
