package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cow-registry/internal/app"
	"cow-registry/internal/platform/config"
	"cow-registry/internal/platform/logger"
	"cow-registry/internal/router"
)

// @title Cow Registry API
// @version 1.0
// @description Cliente del contrato CowOwnership: vacas por cuenta, nacimientos y media en IPFS.
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{Logger: log})
	if err != nil {
		log.Error("app init failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer a.Close()

	stopRefresh, err := a.StartRefresh(ctx)
	if err != nil {
		log.Error("refresh init failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer stopRefresh()

	// sin provider inyectado = nodo local de desarrollo
	devMode := cfg.Chain.Backend == config.BackendMemory || cfg.Chain.ProviderURL == ""

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(a, router.Options{AllowDebugAccount: devMode}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute, // cowBirth espera el receipt
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr, "chain": cfg.Chain.Backend, "ipfs": cfg.Content.Backend})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
