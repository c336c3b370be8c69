package laboralkutxa_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/gastos/internal/importer/laboralkutxa"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Parse(t *testing.T) {
	csv := `Fecha valor;Concepto;Importe;Saldo
02/01/2024;COMPRA CAFE ANORANZA;-3,20;1.231,36
03/01/2024 10:15;NOMINA ENERO;1.234,56;2.465,92
04/01/2024;RECIBO LUZ;-45,00;2.420,92
`

	out := laboralkutxa.NewParser().Parse(strings.NewReader(csv))
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 3)

	assert.Equal(t, transaction.Transaction{
		Date:        date(2024, 1, 2),
		Description: "COMPRA CAFE ANORANZA",
		Amount:      -320,
		Account:     transaction.AccountLaboralKutxa,
	}, out.Transactions[0])

	assert.Equal(t, date(2024, 1, 3), out.Transactions[1].Date)
	assert.Equal(t, int64(123456), out.Transactions[1].Amount)
	assert.True(t, out.Transactions[1].IsIncome())
	assert.True(t, out.Transactions[2].IsExpense())
}

func TestParser_Parse_RowIsolation(t *testing.T) {
	type testCase struct {
		name       string
		csv        string
		wantLen    int
		wantErrors []string
	}

	tests := []testCase{
		{
			name: "bad date in the middle",
			csv: `Fecha valor;Concepto;Importe
02/01/2024;A;-1,00
32/13/2024;B;-2,00
04/01/2024;C;-3,00
`,
			wantLen:    2,
			wantErrors: []string{`row 3: parse date "32/13/2024"`},
		},
		{
			name: "bad amount first and last",
			csv: `Fecha valor;Concepto;Importe
02/01/2024;A;abc
03/01/2024;B;-2,00
04/01/2024;C;1,0x
`,
			wantLen:    1,
			wantErrors: []string{`row 2: parse amount: invalid amount "abc"`, `row 4: parse amount: invalid amount "1,0x"`},
		},
		{
			name: "empty date",
			csv: `Fecha valor;Concepto;Importe
;A;-1,00
`,
			wantLen:    0,
			wantErrors: []string{"row 2: parse date: empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := laboralkutxa.NewParser().Parse(strings.NewReader(tt.csv))

			assert.Len(t, out.Transactions, tt.wantLen)
			require.Len(t, out.Errors, len(tt.wantErrors))

			for i, want := range tt.wantErrors {
				assert.True(t, strings.HasPrefix(out.Errors[i], want), "got %q", out.Errors[i])
				assert.Contains(t, out.Errors[i], "| data: Fecha valor=")
			}
		})
	}
}

func TestParser_Parse_BlankAmountIsZero(t *testing.T) {
	csv := "Fecha valor;Concepto;Importe\n02/01/2024;A;\n03/01/2024;B;-2,00\n04/01/2024;C;  \n"

	out := laboralkutxa.NewParser().Parse(strings.NewReader(csv))
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 3)

	assert.Equal(t, int64(0), out.Transactions[0].Amount)
	assert.Equal(t, "A", out.Transactions[0].Description)
	assert.Equal(t, int64(-200), out.Transactions[1].Amount)
	assert.Equal(t, int64(0), out.Transactions[2].Amount)
}

func TestParser_Parse_UnpaddedDates(t *testing.T) {
	csv := "Fecha valor;Concepto;Importe\n2/1/2024;A;-1,00\n15/3/2024 08:00;B;-2,00\n"

	out := laboralkutxa.NewParser().Parse(strings.NewReader(csv))
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 2)

	assert.Equal(t, date(2024, 1, 2), out.Transactions[0].Date)
	assert.Equal(t, date(2024, 3, 15), out.Transactions[1].Date)
}

func TestParser_Parse_BlankLinesSkipped(t *testing.T) {
	csv := "Fecha valor;Concepto;Importe\n02/01/2024;A;-1,00\n\n;;\n03/01/2024;B;-2,00\n"

	out := laboralkutxa.NewParser().Parse(strings.NewReader(csv))
	assert.Empty(t, out.Errors)
	assert.Len(t, out.Transactions, 2)
}

func TestParser_Parse_MissingColumns(t *testing.T) {
	csv := "Fecha;Concepto;Importe\n02/01/2024;A;-1,00\n"

	out := laboralkutxa.NewParser().Parse(strings.NewReader(csv))
	assert.Empty(t, out.Transactions)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], `missing required columns ["Fecha valor"]`)
}

func TestParser_Parse_EmptyFile(t *testing.T) {
	out := laboralkutxa.NewParser().Parse(strings.NewReader(""))
	assert.Empty(t, out.Transactions)
	assert.Len(t, out.Errors, 1)
}

func TestParser_Parse_Windows1252(t *testing.T) {
	csv := "Fecha valor;Concepto;Importe\n02/01/2024;CAFÉ AÑORANZA;-3,20\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	out := laboralkutxa.NewParser().Parse(strings.NewReader(encoded))
	require.Empty(t, out.Errors)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "CAFÉ AÑORANZA", out.Transactions[0].Description)
}
