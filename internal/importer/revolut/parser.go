// Package revolut parses Revolut account statements exported as CSV, in
// either the Spanish or the English app locale.
package revolut

import (
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/gastos/internal/money"
	"github.com/MrJamesThe3rd/gastos/internal/statement"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

const dateLayout = "2006-01-02 15:04:05"

var (
	colDate   = []string{"Fecha de inicio", "Started Date"}
	colDesc   = []string{"Descripción", "Description"}
	colAmount = []string{"Importe", "Amount"}
	colFee    = []string{"Comisión", "Fee"}
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) statement.Outcome {
	header, records, err := statement.ReadCSV(r, ',')
	if err != nil {
		return statement.Failed(fmt.Errorf("revolut: %w", err))
	}

	cols := statement.IndexHeader(header)

	idx, err := cols.Lookup(colDate, colDesc, colAmount)
	if err != nil {
		return statement.Failed(fmt.Errorf("revolut: %w; found %q", err, cols.Names()))
	}

	// Older exports have no fee column; a missing fee is zero.
	idxFee, _ := cols.Find(colFee...)

	var out statement.Outcome

	for _, rec := range records {
		if rec.Err != nil {
			out.Reject(rec.Line, rec.Err, header, rec.Fields)
			continue
		}

		tx, err := parseRow(rec.Fields, idx[0], idx[1], idx[2], idxFee)
		if err != nil {
			out.Reject(rec.Line, err, header, rec.Fields)
			continue
		}

		out.Add(tx)
	}

	return out
}

func parseRow(row []string, idxDate, idxDesc, idxAmount, idxFee int) (transaction.Transaction, error) {
	raw := statement.Cell(row, idxDate)

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse date %q: %w", raw, err)
	}

	gross, err := money.ParseLenient(statement.Cell(row, idxAmount))
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}

	fee, err := money.ParseLenient(statement.Cell(row, idxFee))
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse fee: %w", err)
	}

	return transaction.New(date, statement.Cell(row, idxDesc), gross-fee, transaction.AccountRevolut), nil
}
