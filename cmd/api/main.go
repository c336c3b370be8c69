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
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/gastos/internal/app"
	"github.com/MrJamesThe3rd/gastos/internal/config"
	"github.com/MrJamesThe3rd/gastos/internal/export"
	gastosHttp "github.com/MrJamesThe3rd/gastos/internal/http"
	exportHandler "github.com/MrJamesThe3rd/gastos/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/gastos/internal/http/importstatement"
	rulesHandler "github.com/MrJamesThe3rd/gastos/internal/http/rules"
	txHandler "github.com/MrJamesThe3rd/gastos/internal/http/transaction"
	"github.com/MrJamesThe3rd/gastos/internal/logger"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create logger")
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithContext(ctx, log)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		importH = importHandler.NewHandler(a, cfg.Server.MaxUploadMB)
		ledgerH = txHandler.NewHandler(a.Ledger)
		rulesH  = rulesHandler.NewHandler(a.Rules)
		exportH = exportHandler.NewHandler(export.NewService(a.Ledger))
	)

	router := gastosHttp.New(log, gastosHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.Server.JWTSecret,
	}, importH, ledgerH, rulesH, exportH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("ledger", cfg.Ledger.Backend).
			Bool("auth", cfg.Server.JWTSecret != "").
			Msg("starting server")

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
