// Package laboralkutxa parses Laboral Kutxa account exports: semicolon
// separated, decimal comma, one signed amount column.
package laboralkutxa

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/gastos/internal/money"
	"github.com/MrJamesThe3rd/gastos/internal/statement"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

const (
	colDate   = "Fecha valor"
	colDesc   = "Concepto"
	colAmount = "Importe"

	dateLayout = "2/1/2006"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) statement.Outcome {
	header, records, err := statement.ReadCSV(r, ';')
	if err != nil {
		return statement.Failed(fmt.Errorf("laboral kutxa: %w", err))
	}

	cols := statement.IndexHeader(header)

	idx, err := cols.Lookup([]string{colDate}, []string{colDesc}, []string{colAmount})
	if err != nil {
		return statement.Failed(fmt.Errorf("laboral kutxa: %w; found %q", err, cols.Names()))
	}

	var out statement.Outcome

	for _, rec := range records {
		if rec.Err != nil {
			out.Reject(rec.Line, rec.Err, header, rec.Fields)
			continue
		}

		tx, err := parseRow(rec.Fields, idx[0], idx[1], idx[2])
		if err != nil {
			out.Reject(rec.Line, err, header, rec.Fields)
			continue
		}

		out.Add(tx)
	}

	return out
}

func parseRow(row []string, idxDate, idxDesc, idxAmount int) (transaction.Transaction, error) {
	date, err := parseDate(statement.Cell(row, idxDate))
	if err != nil {
		return transaction.Transaction{}, err
	}

	amount, err := money.ParseEuropean(statement.Cell(row, idxAmount))
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}

	return transaction.New(date, statement.Cell(row, idxDesc), amount, transaction.AccountLaboralKutxa), nil
}

// parseDate reads the leading DD/MM/YYYY token; the bank sometimes appends
// a time or a note after it.
func parseDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("parse date: empty")
	}

	date, err := time.Parse(dateLayout, fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", fields[0], err)
	}

	return date, nil
}
