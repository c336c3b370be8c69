// Package postgres keeps the ledger in a Postgres table.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the ledger table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying ledger schema: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a ledger row.
// Expected column order: date, description, amount, account, category, subcategory
func scanTransaction(s scanner) (transaction.Transaction, error) {
	var (
		tx      transaction.Transaction
		account string
	)

	if err := s.Scan(&tx.Date, &tx.Description, &tx.Amount, &account, &tx.Category, &tx.Subcategory); err != nil {
		return transaction.Transaction{}, err
	}

	tx.Date = transaction.Day(tx.Date)
	tx.Account = transaction.Account(account)

	return tx, nil
}

func (s *Store) QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error) {
	query := `
		SELECT date, description, amount, account, category, subcategory
		FROM ledger_transactions
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var txs []transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return txs, nil
}

func (s *Store) Append(ctx context.Context, tx transaction.Transaction) error {
	query := `
		INSERT INTO ledger_transactions (id, date, description, amount, account, category, subcategory, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		tx.Date.Format(time.DateOnly),
		tx.Description,
		tx.Amount,
		string(tx.Account),
		tx.Category,
		tx.Subcategory,
	)
	if err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}

	return nil
}
