package transaction

import (
	"fmt"
	"slices"
	"time"
)

// Account identifies the institution a transaction was exported from.
type Account string

const (
	AccountLaboralKutxa Account = "Laboral Kutxa"
	AccountBBVA         Account = "BBVA"
	AccountRevolut      Account = "Revolut"
)

// Accounts is the closed set of institutions the system knows about.
var Accounts = []Account{AccountLaboralKutxa, AccountBBVA, AccountRevolut}

func (a Account) Valid() bool {
	return slices.Contains(Accounts, a)
}

// Classification is the advisory category metadata assigned before a
// transaction is appended to the ledger. Empty fields mean absent.
type Classification struct {
	Category    string
	Subcategory string
}

func (c Classification) IsZero() bool {
	return c.Category == "" && c.Subcategory == ""
}

// Transaction is a single monetary movement in canonical form.
// Values are treated as immutable; use Classified to derive a copy with
// category metadata.
type Transaction struct {
	Date        time.Time // Calendar day at UTC midnight
	Description string
	Amount      int64 // Signed cents: negative is an expense, positive an income
	Account     Account
	Category    string
	Subcategory string
}

// New builds a transaction with its date truncated to the calendar day.
func New(date time.Time, description string, amount int64, account Account) Transaction {
	return Transaction{
		Date:        Day(date),
		Description: description,
		Amount:      amount,
		Account:     account,
	}
}

// Day drops the time-of-day component, keeping the wall-clock date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (t Transaction) IsExpense() bool { return t.Amount < 0 }
func (t Transaction) IsIncome() bool  { return t.Amount > 0 }

// AbsAmount returns the magnitude of the amount in cents.
func (t Transaction) AbsAmount() int64 {
	if t.Amount < 0 {
		return -t.Amount
	}

	return t.Amount
}

// Classified returns a copy of t carrying the given classification.
func (t Transaction) Classified(c Classification) Transaction {
	t.Category = c.Category
	t.Subcategory = c.Subcategory

	return t
}

func (t Transaction) String() string {
	sign := ""
	abs := t.AbsAmount()

	if t.Amount < 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s %s %s%d.%02d %q", t.Date.Format(time.DateOnly), t.Account, sign, abs/100, abs%100, t.Description)
}
