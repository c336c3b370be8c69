package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

const pageSize = 100

type Ledger struct {
	svc        NotionService
	databaseID string
}

func NewLedger(svc NotionService, databaseID string) *Ledger {
	return &Ledger{svc: svc, databaseID: databaseID}
}

// QueryRange follows the query cursor until every page dated within
// [start, end] has been fetched.
func (l *Ledger) QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error) {
	from := notionapi.Date(transaction.Day(start))
	to := notionapi.Date(transaction.Day(end))

	filter := notionapi.AndCompoundFilter{
		notionapi.PropertyFilter{
			Property: propDate,
			Date:     &notionapi.DateFilterCondition{OnOrAfter: &from},
		},
		notionapi.PropertyFilter{
			Property: propDate,
			Date:     &notionapi.DateFilterCondition{OnOrBefore: &to},
		},
	}

	var (
		txs    []transaction.Transaction
		cursor notionapi.Cursor
		pages  int
	)

	for {
		req := &notionapi.DatabaseQueryRequest{
			Filter:   filter,
			PageSize: pageSize,
		}

		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := l.svc.QueryDatabase(ctx, l.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("query ledger page %d: %w", pages+1, err)
		}

		pages++

		for _, page := range resp.Results {
			tx, ok := PageToTransaction(page)
			if !ok {
				zerolog.Ctx(ctx).Debug().Str("page_id", string(page.ID)).Msg("ignoring page without date")
				continue
			}

			txs = append(txs, tx)
		}

		if !resp.HasMore {
			break
		}

		cursor = resp.NextCursor
	}

	return txs, nil
}

func (l *Ledger) Append(ctx context.Context, tx transaction.Transaction) error {
	page, err := l.svc.CreatePage(ctx, l.databaseID, TransactionToProperties(tx))
	if err != nil {
		return err
	}

	if page != nil {
		zerolog.Ctx(ctx).Debug().Str("page_id", string(page.ID)).Msg("created ledger page")
	}

	return nil
}
