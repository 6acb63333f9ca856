package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/skinbox/api"
	"github.com/raushankrgupta/skinbox/app"
	"github.com/raushankrgupta/skinbox/config"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Logger = logger

	tokens, err := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("token issuer")
	}

	ctx := context.Background()
	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialize application")
	}
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("close application")
		}
	}()

	router := api.NewRouter(api.Deps{
		Gateway:   application.Gateway,
		Boxes:     application.Boxes,
		Statuses:  application.Assembler,
		Orders:    application.Orders,
		Importer:  application.Importer,
		Auth:      application.Auth,
		Tokens:    tokens,
		Presigner: application.Presigner(),
		Logger:    logger,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
			return
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
