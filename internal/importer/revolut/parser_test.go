package revolut_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastos/internal/importer/revolut"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name       string
		csv        string
		wantAmount []int64
		wantDesc   []string
	}

	tests := []testCase{
		{
			name: "spanish export",
			csv: `Tipo,Producto,Fecha de inicio,Fecha de finalización,Descripción,Importe,Comisión,Divisa,State,Saldo
PAGO CON TARJETA,Actual,2024-01-03 08:12:45,2024-01-04 10:00:00,Coffee,-3.20,0.00,EUR,COMPLETADO,96.80
CAMBIO,Actual,2024-01-05 19:30:00,2024-01-05 19:30:01,Exchanged to USD,-100.00,0.50,EUR,COMPLETADO,-3.70
RECARGA,Actual,2024-01-06 09:00:00,2024-01-06 09:00:00,Top-up,"1.000,00",,EUR,COMPLETADO,996.30
`,
			wantAmount: []int64{-320, -10050, 100000},
			wantDesc:   []string{"Coffee", "Exchanged to USD", "Top-up"},
		},
		{
			name: "english export without fee column",
			csv: `Type,Product,Started Date,Completed Date,Description,Amount,Currency,State,Balance
CARD_PAYMENT,Current,2024-01-03 08:12:45,2024-01-04 10:00:00,Coffee,€-3.20,EUR,COMPLETED,96.80
TOPUP,Current,2024-01-04 00:00:00,2024-01-04 00:00:01,Refund,,EUR,COMPLETED,96.80
`,
			wantAmount: []int64{-320, 0},
			wantDesc:   []string{"Coffee", "Refund"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := revolut.NewParser().Parse(strings.NewReader(tt.csv))
			require.Empty(t, out.Errors)
			require.Len(t, out.Transactions, len(tt.wantAmount))

			for i, tx := range out.Transactions {
				assert.Equal(t, tt.wantAmount[i], tx.Amount)
				assert.Equal(t, tt.wantDesc[i], tx.Description)
				assert.Equal(t, transaction.AccountRevolut, tx.Account)
			}

			assert.Equal(t, date(2024, 1, 3), out.Transactions[0].Date)
		})
	}
}

func TestParser_Parse_RowErrors(t *testing.T) {
	csv := `Fecha de inicio,Descripción,Importe,Comisión
2024-01-03 08:12:45,Coffee,-3.20,0
03/01/2024,Tea,-2.00,0
2024-01-04 10:00:00,Cake,abc,0
2024-01-05 10:00:00,Juice,-1.00,x
2024-01-06 10:00:00,Water,-0.50,
`

	out := revolut.NewParser().Parse(strings.NewReader(csv))
	require.Len(t, out.Transactions, 2)
	require.Len(t, out.Errors, 3)

	assert.True(t, strings.HasPrefix(out.Errors[0], `row 3: parse date "03/01/2024"`), out.Errors[0])
	assert.True(t, strings.HasPrefix(out.Errors[1], "row 4: parse amount"), out.Errors[1])
	assert.True(t, strings.HasPrefix(out.Errors[2], "row 5: parse fee"), out.Errors[2])
	assert.Equal(t, int64(-50), out.Transactions[1].Amount)
}

func TestParser_Parse_MissingColumns(t *testing.T) {
	csv := "Started Date,Description\n2024-01-03 08:12:45,Coffee\n"

	out := revolut.NewParser().Parse(strings.NewReader(csv))
	assert.Empty(t, out.Transactions)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], `missing required columns ["Importe"]`)
}
