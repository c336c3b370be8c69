package reconcile

import (
	"time"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

type matchKey struct {
	Date    string
	Account transaction.Account
	Amount  int64
}

func keyOf(tx transaction.Transaction) matchKey {
	return matchKey{
		Date:    tx.Date.Format(time.DateOnly),
		Account: tx.Account,
		Amount:  tx.Amount,
	}
}

// candidates is a multiset of ledger entries keyed by (date, account,
// signed amount). Entries are consumed in ledger order.
type candidates map[matchKey][]transaction.Transaction

func newCandidates(existing []transaction.Transaction) candidates {
	c := make(candidates, len(existing))

	for _, tx := range existing {
		k := keyOf(tx)
		c[k] = append(c[k], tx)
	}

	return c
}

// consume removes and returns one entry matching tx, if any remain.
func (c candidates) consume(tx transaction.Transaction) (transaction.Transaction, bool) {
	k := keyOf(tx)

	queue := c[k]
	if len(queue) == 0 {
		return transaction.Transaction{}, false
	}

	c[k] = queue[1:]

	return queue[0], true
}
