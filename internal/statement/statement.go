// Package statement holds the result of parsing one bank export file.
package statement

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// Outcome is the ordered batch of transactions parsed from a file together
// with one human-readable error per row that could not be parsed.
type Outcome struct {
	Transactions []transaction.Transaction
	Errors       []string
}

// Failed is the outcome of a file that could not be parsed at all.
func Failed(err error) Outcome {
	return Outcome{Errors: []string{err.Error()}}
}

// Add appends a parsed transaction.
func (o *Outcome) Add(tx transaction.Transaction) {
	o.Transactions = append(o.Transactions, tx)
}

// Reject records a row that could not be parsed. line is the 1-based line
// of the row in the source file; header and row provide the raw values.
func (o *Outcome) Reject(line int, err error, header, row []string) {
	o.Errors = append(o.Errors, RowError(line, err, header, row))
}

// RowError formats a row-level failure with enough context to debug it
// without reopening the source file.
func RowError(line int, err error, header, row []string) string {
	fields := make([]string, 0, max(len(header), len(row)))

	for i := range max(len(header), len(row)) {
		name := fmt.Sprintf("col%d", i+1)
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			name = strings.TrimSpace(header[i])
		}

		value := ""
		if i < len(row) {
			value = row[i]
		}

		fields = append(fields, fmt.Sprintf("%s=%q", name, value))
	}

	return fmt.Sprintf("row %d: %v | data: %s", line, err, strings.Join(fields, ", "))
}
