package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/gastos/internal/statement"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// Bank identifies a supported export format. It is always chosen by the
// caller; file content is never sniffed to pick a parser.
type Bank string

const (
	BankLaboralKutxa Bank = "laboral_kutxa"
	BankBBVA         Bank = "bbva"
	BankRevolut      Bank = "revolut"
)

var ErrUnknownBank = errors.New("unknown bank")

// Banks lists the supported formats in display order.
func Banks() []Bank {
	return []Bank{BankLaboralKutxa, BankBBVA, BankRevolut}
}

// ParseBank validates a bank identifier.
func ParseBank(s string) (Bank, error) {
	for _, b := range Banks() {
		if string(b) == s {
			return b, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownBank, s)
}

// Account is the ledger account transactions from this bank are booked to.
func (b Bank) Account() transaction.Account {
	switch b {
	case BankLaboralKutxa:
		return transaction.AccountLaboralKutxa
	case BankBBVA:
		return transaction.AccountBBVA
	case BankRevolut:
		return transaction.AccountRevolut
	}

	return ""
}

// Importer turns one raw export file into transactions and row errors.
// Row problems never fail the call; a file that cannot be read at all
// yields no transactions and a single error.
type Importer interface {
	Parse(r io.Reader) statement.Outcome
}
