package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/MrJamesThe3rd/gastos/internal/rules"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the rules table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying rules schema: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]rules.Rule, error) {
	query := `
		SELECT name, priority, exact, contains, category, subcategory
		FROM categorization_rules
		ORDER BY priority DESC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var out []rules.Rule

	for rows.Next() {
		var r rules.Rule
		if err := rows.Scan(&r.Name, &r.Priority, &r.Exact, &r.Contains, &r.Category, &r.Subcategory); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}

	return out, nil
}

func (s *Store) CreateRule(ctx context.Context, r rules.Rule) error {
	query := `
		INSERT INTO categorization_rules (name, priority, exact, contains, category, subcategory, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, r.Name, r.Priority, r.Exact, r.Contains, r.Category, r.Subcategory)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
