// Package export writes a range of the ledger to a spreadsheet and
// summarises it by category.
package export

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/gastos/internal/money"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

const (
	sheetTransactions = "Transacciones"
	sheetSummary      = "Resumen"
	uncategorized     = "Sin categoría"
)

var transactionHeader = []any{"Fecha", "Nombre", "Cuenta", "Gasto", "Ingreso", "Categoría", "Subcategoría"}

// Querier reads ledger transactions for an inclusive date range.
type Querier interface {
	QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error)
}

// CategoryTotal aggregates the movements of one category.
type CategoryTotal struct {
	Category string
	Expenses int64 // Sum of negative amounts, so never positive
	Income   int64
	Count    int
}

// Report is what an export produced.
type Report struct {
	Start, End   time.Time
	Transactions []transaction.Transaction
	Totals       []CategoryTotal
}

// Service handles the export of ledger transactions.
type Service struct {
	ledger Querier
}

func NewService(ledger Querier) *Service {
	return &Service{ledger: ledger}
}

// Export reads the ledger between start and end inclusive, writes an XLSX
// workbook with one row per transaction and a per-category summary sheet
// to w, and returns what was written.
func (s *Service) Export(ctx context.Context, start, end time.Time, w io.Writer) (Report, error) {
	txs, err := s.ledger.QueryRange(ctx, start, end)
	if err != nil {
		return Report{}, fmt.Errorf("query ledger: %w", err)
	}

	slices.SortStableFunc(txs, func(a, b transaction.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	report := Report{Start: start, End: end, Transactions: txs, Totals: Summarize(txs)}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeTransactions(f, txs); err != nil {
		return Report{}, err
	}

	if err := writeSummary(f, report.Totals); err != nil {
		return Report{}, err
	}

	if _, err := f.WriteTo(w); err != nil {
		return Report{}, fmt.Errorf("write workbook: %w", err)
	}

	return report, nil
}

func writeTransactions(f *excelize.File, txs []transaction.Transaction) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheetTransactions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}

	if err := f.SetSheetRow(sheetTransactions, "A1", &transactionHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, tx := range txs {
		var expense, income any
		if tx.IsExpense() {
			expense = money.ToFloat(tx.AbsAmount())
		} else {
			income = money.ToFloat(tx.Amount)
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)

		row := []any{tx.Date, tx.Description, string(tx.Account), expense, income, tx.Category, tx.Subcategory}
		if err := f.SetSheetRow(sheetTransactions, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(txs) > 0 {
		last, _ := excelize.CoordinatesToCellName(1, len(txs)+1)
		if err := f.SetCellStyle(sheetTransactions, "A2", last, dateStyle); err != nil {
			return fmt.Errorf("style dates: %w", err)
		}
	}

	return nil
}

func writeSummary(f *excelize.File, totals []CategoryTotal) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"Categoría", "Movimientos", "Gasto", "Ingreso"}
	if err := f.SetSheetRow(sheetSummary, "A1", &header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for i, t := range totals {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)

		row := []any{t.Category, t.Count, money.ToFloat(-t.Expenses), money.ToFloat(t.Income)}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	return nil
}

// Summarize groups transactions by category, largest spend first.
func Summarize(txs []transaction.Transaction) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)

	for _, tx := range txs {
		name := tx.Category
		if name == "" {
			name = uncategorized
		}

		t, ok := byCategory[name]
		if !ok {
			t = &CategoryTotal{Category: name}
			byCategory[name] = t
		}

		t.Count++

		if tx.IsExpense() {
			t.Expenses += tx.Amount
		} else {
			t.Income += tx.Amount
		}
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, t := range byCategory {
		totals = append(totals, *t)
	}

	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := cmp.Compare(a.Expenses, b.Expenses); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return totals
}

// Text renders the report as plain text, one category per line.
func (r Report) Text() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s to %s: %d transactions\n",
		r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly), len(r.Transactions))

	for _, t := range r.Totals {
		fmt.Fprintf(&sb, "* %s | %d | %s € | +%s €\n", t.Category, t.Count, money.Format(t.Expenses), money.Format(t.Income))
	}

	return sb.String()
}
