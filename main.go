package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"yt-transcript/config"
	"yt-transcript/handlers"
	"yt-transcript/logger"
	"yt-transcript/middleware"
	"yt-transcript/transcript"
	"yt-transcript/web"
)

func main() {
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded configuration from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	if err := logger.Init(cfg.LogDir, cfg.Debug); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	service := transcript.NewService(transcript.Config{
		ProxyAddr:         cfg.ProxyAddr,
		PreferredLanguage: cfg.PreferredLanguage,
		FetchTimeout:      cfg.FetchTimeout,
	})

	handler := handlers.New(service, web.NewTemplates())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /watch", handler.Watch)
	mux.HandleFunc("GET /api/transcript/{id}", handler.APITranscript)
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /static/", web.StaticHandler())

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Chain(mux, middleware.Logging),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		if cfg.ProxyAddr != "" {
			logrus.WithField("proxy", cfg.ProxyAddr).Info("Transcript fetches will try the proxy first")
		} else {
			logrus.Info("No proxy configured, using direct connections")
		}

		logrus.WithField("port", cfg.ServerPort).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down the server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server shutdown failed")
	}
}
