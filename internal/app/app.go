// Package app wires the importer, rules and ledger shared by every binary.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/config"
	"github.com/MrJamesThe3rd/gastos/internal/database"
	"github.com/MrJamesThe3rd/gastos/internal/importer"
	"github.com/MrJamesThe3rd/gastos/internal/ledger"
	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
	"github.com/MrJamesThe3rd/gastos/internal/rules"
	rulesStore "github.com/MrJamesThe3rd/gastos/internal/rules/store"
)

type App struct {
	Config   *config.Config
	Importer *importer.Service
	Rules    *rules.Engine
	Ledger   *ledger.Ledger
}

// New opens the configured ledger and loads the categorization rules.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	engine, err := LoadRules(ctx, cfg)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Importer: importer.NewService(),
		Rules:    engine,
		Ledger:   l,
	}, nil
}

func (a *App) Close() error {
	return a.Ledger.Close()
}

// Reconciler returns a reconciler over the ledger; with dryRun set nothing
// is written.
func (a *App) Reconciler(dryRun bool) *reconcile.Service {
	var l reconcile.Ledger = a.Ledger
	if dryRun {
		l = ledger.NewDryRun(a.Ledger)
	}

	return reconcile.NewService(l, a.Rules)
}

// ImportFile parses one export and reconciles it. Only an unknown bank is
// returned as an error; everything else is reported in the result.
func (a *App) ImportFile(ctx context.Context, bank importer.Bank, r io.Reader, dryRun bool) (reconcile.Result, error) {
	out, err := a.Importer.Import(bank, r)
	if err != nil {
		return reconcile.Result{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("bank", string(bank)).
		Int("parsed", len(out.Transactions)).
		Int("row_errors", len(out.Errors)).
		Msg("statement parsed")

	return a.Reconciler(dryRun).ProcessOutcome(ctx, out), nil
}

// LoadRules builds the rules engine from the configured source. A missing
// rules file is not fatal: imports proceed without categorization.
func LoadRules(ctx context.Context, cfg *config.Config) (*rules.Engine, error) {
	log := zerolog.Ctx(ctx)

	switch cfg.Rules.Source {
	case "file", "":
		engine, err := rules.LoadFromFile(cfg.Rules.Path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", cfg.Rules.Path).Msg("rules file not found, transactions will not be categorized")
			return rules.Empty(), nil
		}

		if err != nil {
			return nil, err
		}

		log.Info().Str("path", cfg.Rules.Path).Int("rules", len(engine.Rules())).Msg("rules loaded")

		return engine, nil

	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("rules database: %w", err)
		}
		defer db.Close()

		store := rulesStore.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		list, err := store.ListRules(ctx)
		if err != nil {
			return nil, err
		}

		log.Info().Int("rules", len(list)).Msg("rules loaded from database")

		return rules.NewEngine(list)
	}

	return nil, fmt.Errorf("unknown rules source %q", cfg.Rules.Source)
}
