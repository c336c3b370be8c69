package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/gastos/internal/money"
)

// ledgerTimeout bounds a single ledger read. Notion pages through results
// and retries on rate limits, so this is generous.
const ledgerTimeout = 30 * time.Second

// FormatAmount formats signed cents as "-12.34".
func FormatAmount(cents int64) string {
	return money.Format(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// LedgerCtx returns a context with a standard timeout for ledger reads.
func LedgerCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, ledgerTimeout)
}
