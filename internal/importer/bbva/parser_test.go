package bbva_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/gastos/internal/importer/bbva"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// workbook builds a BBVA-like export: four metadata rows, the header on
// row 5 and the given data rows from row 6.
func workbook(t *testing.T, header []any, rows ...[]any) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "A1", "Últimos movimientos"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Cuenta"))
	require.NoError(t, f.SetCellValue(sheet, "B3", "ES00 0182 0000 0000 0000 0000"))

	require.NoError(t, f.SetSheetRow(sheet, "A5", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, 6+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return bytes.NewReader(buf.Bytes())
}

var header = []any{"F.Valor", "Fecha", "Concepto", "Movimiento", "Importe", "Divisa", "Disponible", "Observaciones"}

func TestParser_Parse(t *testing.T) {
	r := workbook(t, header,
		[]any{date(2024, 1, 3), date(2024, 1, 3), "Transferencia Juan", "Transferencia recibida", 650.0, "EUR", 1650.0, "Pago alquiler"},
		[]any{"04/01/2024", "04/01/2024", "BIZUM ENVIADO", "Bizum", "-12,50", "EUR", 1637.5, "Cena"},
		[]any{"05/01/2024", "05/01/2024", "Mercadona", "Pago con tarjeta", -3.2, "EUR", 1634.3},
	)

	out := bbva.NewParser().Parse(r)
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 3)

	assert.Equal(t, transaction.Transaction{
		Date:        date(2024, 1, 3),
		Description: "Transferencia: Pago alquiler",
		Amount:      65000,
		Account:     transaction.AccountBBVA,
	}, out.Transactions[0])

	assert.Equal(t, date(2024, 1, 4), out.Transactions[1].Date)
	assert.Equal(t, "Bizum: Cena", out.Transactions[1].Description)
	assert.Equal(t, int64(-1250), out.Transactions[1].Amount)

	assert.Equal(t, "Mercadona", out.Transactions[2].Description)
	assert.Equal(t, int64(-320), out.Transactions[2].Amount)
	assert.True(t, out.Transactions[2].IsExpense())
}

func TestParser_Parse_RowErrors(t *testing.T) {
	r := workbook(t, header,
		[]any{"03/01/2024", "", "Uno", "", -1.0},
		[]any{"2024-01-04", "", "Dos", "", -2.0},
		[]any{"05/01/2024", "", "Tres", "", "abc"},
		[]any{"06/01/2024", "", "Cuatro", "", -4.0},
	)

	out := bbva.NewParser().Parse(r)
	require.Len(t, out.Transactions, 2)
	require.Len(t, out.Errors, 2)

	assert.True(t, strings.HasPrefix(out.Errors[0], `row 7: parse date "2024-01-04"`), out.Errors[0])
	assert.True(t, strings.HasPrefix(out.Errors[1], `row 8: parse amount`), out.Errors[1])
	assert.Contains(t, out.Errors[1], `Concepto="Tres"`)
}

func TestParser_Parse_BlankAmountIsZero(t *testing.T) {
	r := workbook(t, header,
		[]any{"03/01/2024", "", "Uno", "", ""},
		[]any{"04/01/2024", "", "Dos", "", "-2,00"},
	)

	out := bbva.NewParser().Parse(r)
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 2)

	assert.Equal(t, int64(0), out.Transactions[0].Amount)
	assert.Equal(t, "Uno", out.Transactions[0].Description)
	assert.Equal(t, int64(-200), out.Transactions[1].Amount)
}

func TestParser_Parse_UnpaddedDate(t *testing.T) {
	r := workbook(t, header,
		[]any{"3/1/2024", "", "Uno", "", -1.0},
	)

	out := bbva.NewParser().Parse(r)
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, date(2024, 1, 3), out.Transactions[0].Date)
}

func TestParser_Parse_WithoutObservationsColumn(t *testing.T) {
	r := workbook(t, []any{"F.Valor", "Concepto", "Importe"},
		[]any{"03/01/2024", "TRANSFERENCIA A MARIA", -20.0},
	)

	out := bbva.NewParser().Parse(r)
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "Transferencia: ", out.Transactions[0].Description)
}

func TestParser_Parse_MissingColumns(t *testing.T) {
	r := workbook(t, []any{"Fecha", "Concepto", "Importe"},
		[]any{"03/01/2024", "Uno", -1.0},
	)

	out := bbva.NewParser().Parse(r)
	assert.Empty(t, out.Transactions)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], `missing required columns ["F.Valor"]`)
}

func TestParser_Parse_NotAWorkbook(t *testing.T) {
	out := bbva.NewParser().Parse(strings.NewReader("F.Valor;Concepto;Importe\n"))
	assert.Empty(t, out.Transactions)
	assert.Len(t, out.Errors, 1)
}

func TestDescribe(t *testing.T) {
	type testCase struct {
		name         string
		concept      string
		observations string
		want         string
	}

	tests := []testCase{
		{name: "transfer", concept: "Transferencia Juan", observations: "Pago alquiler", want: "Transferencia: Pago alquiler"},
		{name: "transfer upper case", concept: "TRANSFERENCIA RECIBIDA", observations: "Nómina", want: "Transferencia: Nómina"},
		{name: "bizum", concept: "Bizum de Ana", observations: "Regalo", want: "Bizum: Regalo"},
		{name: "bizum without observations", concept: "BIZUM", observations: "", want: "Bizum: "},
		{name: "other", concept: "Mercadona", observations: "ignored", want: "Mercadona"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bbva.Describe(tt.concept, tt.observations))
		})
	}
}
