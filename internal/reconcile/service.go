// Package reconcile appends freshly parsed transactions to a ledger that
// has no stable transaction id, so that importing the same file twice
// inserts nothing the second time.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/statement"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=reconcile

// Ledger is the system of record transactions are reconciled against.
type Ledger interface {
	// QueryRange returns every stored transaction dated within [start, end],
	// both bounds being whole calendar days.
	QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error)
	// Append stores one transaction. It either fully succeeds or fails.
	Append(ctx context.Context, tx transaction.Transaction) error
}

// Classifier maps a description to its category. ok is false when no rule
// matches; that is not an error.
type Classifier interface {
	Classify(description string) (c transaction.Classification, ok bool)
}

type Service struct {
	ledger     Ledger
	classifier Classifier
}

func NewService(ledger Ledger, classifier Classifier) *Service {
	return &Service{ledger: ledger, classifier: classifier}
}

// ProcessOutcome reconciles a parsed file, reporting its row errors ahead
// of any append failures. A failed ledger query is reported alone.
func (s *Service) ProcessOutcome(ctx context.Context, out statement.Outcome) Result {
	res, queried := s.process(ctx, out.Transactions)
	if queried && len(out.Errors) > 0 {
		res.Errors = append(append([]string{}, out.Errors...), res.Errors...)
	}

	return res
}

// Process walks batch in order, appending every transaction that does not
// pair with an unconsumed ledger entry of the same (date, account, amount).
//
// Each ledger entry pairs with at most one parsed transaction, so a file
// that repeats a charge already stored once inserts the extra copy.
func (s *Service) Process(ctx context.Context, batch []transaction.Transaction) Result {
	res, _ := s.process(ctx, batch)
	return res
}

// process reports false when the ledger could not be queried, in which
// case nothing was appended.
func (s *Service) process(ctx context.Context, batch []transaction.Transaction) (Result, bool) {
	res := Result{TotalRead: len(batch)}
	if len(batch) == 0 {
		return res, true
	}

	log := zerolog.Ctx(ctx)

	start, end := DateRange(batch)
	log.Info().
		Str("start", start.Format(time.DateOnly)).
		Str("end", end.Format(time.DateOnly)).
		Int("parsed", len(batch)).
		Msg("querying ledger")

	existing, err := s.ledger.QueryRange(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("query ledger failed")

		res.Errors = []string{fmt.Sprintf("query ledger %s to %s: %v", start.Format(time.DateOnly), end.Format(time.DateOnly), err)}

		return res, false
	}

	pool := newCandidates(existing)

	for i, tx := range batch {
		if err := ctx.Err(); err != nil {
			res.Skipped = len(batch) - i
			res.Errors = append(res.Errors, fmt.Sprintf("stopped after %d of %d transactions: %v", i, len(batch), err))

			break
		}

		if match, ok := pool.consume(tx); ok {
			res.Duplicates++

			log.Debug().Stringer("tx", tx).Stringer("existing", match).Msg("duplicate")

			continue
		}

		if c, ok := s.classifier.Classify(tx.Description); ok {
			tx = tx.Classified(c)
		}

		if err := s.ledger.Append(ctx, tx); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("append %s: %v", tx, err))

			log.Warn().Err(err).Stringer("tx", tx).Msg("append failed")

			continue
		}

		res.Inserted++

		log.Debug().Stringer("tx", tx).Str("category", tx.Category).Msg("inserted")
	}

	return res, true
}

// DateRange returns the earliest and latest day in a non-empty batch.
func DateRange(batch []transaction.Transaction) (time.Time, time.Time) {
	minDate := batch[0].Date
	maxDate := batch[0].Date

	for _, tx := range batch[1:] {
		if tx.Date.Before(minDate) {
			minDate = tx.Date
		}

		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
	}

	return transaction.Day(minDate), transaction.Day(maxDate)
}
