// Package ledger opens the configured ledger backend.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/gastos/internal/config"
	"github.com/MrJamesThe3rd/gastos/internal/database"
	"github.com/MrJamesThe3rd/gastos/internal/ledger/local"
	"github.com/MrJamesThe3rd/gastos/internal/ledger/notion"
	"github.com/MrJamesThe3rd/gastos/internal/ledger/postgres"
	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
)

type Backend string

const (
	BackendNotion   Backend = "notion"
	BackendPostgres Backend = "postgres"
	BackendLocal    Backend = "local"
)

var ErrUnknownBackend = errors.New("unknown ledger backend")

// Ledger is a reconcile.Ledger holding resources released by Close.
type Ledger struct {
	reconcile.Ledger
	close func() error
}

func (l *Ledger) Close() error {
	if l.close == nil {
		return nil
	}

	return l.close()
}

// Open builds the backend named in cfg. Missing credentials are reported
// here so that binaries fail at startup rather than mid-import.
func Open(ctx context.Context, cfg *config.Config) (*Ledger, error) {
	switch Backend(cfg.Ledger.Backend) {
	case BackendNotion:
		if cfg.Notion.Token == "" || cfg.Notion.DatabaseID == "" {
			return nil, fmt.Errorf("notion ledger: NOTION_TOKEN and NOTION_DATABASE_ID are required")
		}

		client := notion.NewNotionClient(cfg.Notion.Token, cfg.Notion.Retries)

		return &Ledger{Ledger: notion.NewLedger(client, cfg.Notion.DatabaseID)}, nil

	case BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("postgres ledger: %w", err)
		}

		store := postgres.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres ledger: %w", err)
		}

		return &Ledger{Ledger: store, close: db.Close}, nil

	case BackendLocal:
		store, err := local.Open(cfg.Ledger.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("local ledger: %w", err)
		}

		return &Ledger{Ledger: store, close: store.Close}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Ledger.Backend)
}
