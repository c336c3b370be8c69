// Package bbva parses BBVA account exports, which are xlsx workbooks with
// a few lines of account metadata above the movements table.
package bbva

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/gastos/internal/money"
	"github.com/MrJamesThe3rd/gastos/internal/statement"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

const (
	colDate         = "F.Valor"
	colDesc         = "Concepto"
	colAmount       = "Importe"
	colObservations = "Observaciones"

	// skipRows is the number of metadata rows above the header.
	skipRows = 4

	dateLayout = "2/1/2006"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) statement.Outcome {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return statement.Failed(fmt.Errorf("bbva: open workbook: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return statement.Failed(fmt.Errorf("bbva: workbook has no sheets"))
	}

	sh := newSheet(f, sheets[0])

	rows, err := f.GetRows(sh.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return statement.Failed(fmt.Errorf("bbva: read rows: %w", err))
	}

	if len(rows) <= skipRows {
		return statement.Failed(fmt.Errorf("bbva: header row %d not found", skipRows+1))
	}

	header := rows[skipRows]
	cols := statement.IndexHeader(header)

	idx, err := cols.Lookup([]string{colDate}, []string{colDesc}, []string{colAmount})
	if err != nil {
		return statement.Failed(fmt.Errorf("bbva: %w; found %q", err, cols.Names()))
	}

	idxObs, _ := cols.Find(colObservations)

	var out statement.Outcome

	for i := skipRows + 1; i < len(rows); i++ {
		row := rows[i]
		if statement.Blank(row) {
			continue
		}

		line := i + 1

		tx, err := sh.parseRow(line, row, idx[0], idx[1], idx[2], idxObs)
		if err != nil {
			out.Reject(line, err, header, row)
			continue
		}

		out.Add(tx)
	}

	return out
}

func (s *sheet) parseRow(line int, row []string, idxDate, idxDesc, idxAmount, idxObs int) (transaction.Transaction, error) {
	dateVal, err := s.value(line, idxDate, row)
	if err != nil {
		return transaction.Transaction{}, err
	}

	date, err := parseDate(dateVal)
	if err != nil {
		return transaction.Transaction{}, err
	}

	amountVal, err := s.value(line, idxAmount, row)
	if err != nil {
		return transaction.Transaction{}, err
	}

	amount, err := parseAmount(amountVal)
	if err != nil {
		return transaction.Transaction{}, err
	}

	description := Describe(statement.Cell(row, idxDesc), statement.Cell(row, idxObs))

	return transaction.New(date, description, amount, transaction.AccountBBVA), nil
}

// Describe replaces the generic concept of transfers and Bizum payments
// with the free-text observations, which carry the useful label.
func Describe(concept, observations string) string {
	lower := strings.ToLower(concept)

	switch {
	case strings.Contains(lower, "transferencia"):
		return "Transferencia: " + observations
	case strings.Contains(lower, "bizum"):
		return "Bizum: " + observations
	}

	return concept
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", d, err)
		}

		return t, nil
	}

	return time.Time{}, fmt.Errorf("parse date: unexpected value %v", v)
}

func parseAmount(v any) (int64, error) {
	switch a := v.(type) {
	case float64:
		return money.FromFloat(a), nil
	case string:
		cents, err := money.ParseEuropean(a)
		if err != nil {
			return 0, fmt.Errorf("parse amount: %w", err)
		}

		return cents, nil
	}

	return 0, fmt.Errorf("parse amount: unexpected value %v", v)
}
