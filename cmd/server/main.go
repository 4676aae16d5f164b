package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"explorer/internal/api"
	"explorer/internal/config"
	"explorer/internal/logger"
	"explorer/internal/source"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewStructured("error", "json").
			WithError(err).Error("failed to load config", nil)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).
		WithFields(map[string]interface{}{"app": cfg.App.Name, "env": cfg.App.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closer, err := source.FromConfig(ctx, cfg.Source)
	if err != nil {
		log.WithError(err).Error("failed to build source", nil)
		os.Exit(1)
	}
	defer closer.Close()

	// The API is live right away and answers 503 until the load finishes.
	h := api.NewHandler(log)
	e := api.NewServer(h, log, cfg.Logging.Level)

	go func() {
		log.Info("loading dataset", map[string]interface{}{"source": cfg.Source.Kind})
		_ = h.Load(ctx, src)
	}()

	go func() {
		log.Info("server listening", map[string]interface{}{"addr": cfg.Server.Address()})
		if err := e.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped", nil)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error", nil)
	}
	log.Info("server exiting", nil)
}
