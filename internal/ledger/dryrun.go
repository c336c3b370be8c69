package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// DryRun reads from the wrapped ledger but never writes to it.
type DryRun struct {
	next reconcile.Ledger
}

func NewDryRun(next reconcile.Ledger) *DryRun {
	return &DryRun{next: next}
}

func (d *DryRun) QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error) {
	return d.next.QueryRange(ctx, start, end)
}

func (d *DryRun) Append(ctx context.Context, tx transaction.Transaction) error {
	zerolog.Ctx(ctx).Info().Stringer("tx", tx).Str("category", tx.Category).Msg("dry run: would append")
	return nil
}
