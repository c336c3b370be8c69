package statement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastos/internal/statement"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

func TestRowError(t *testing.T) {
	got := statement.RowError(4, errors.New("bad date"),
		[]string{"Fecha valor", "Concepto", "Importe"},
		[]string{"32/13/2024", "Compra", "-1,00"},
	)

	assert.Equal(t, `row 4: bad date | data: Fecha valor="32/13/2024", Concepto="Compra", Importe="-1,00"`, got)
}

func TestRowError_RaggedRow(t *testing.T) {
	got := statement.RowError(2, errors.New("boom"),
		[]string{"A", ""},
		[]string{"1", "2", "3"},
	)

	assert.Equal(t, `row 2: boom | data: A="1", col2="2", col3="3"`, got)
}

func TestOutcome_AddAndReject(t *testing.T) {
	var out statement.Outcome

	out.Add(transaction.New(time.Now(), "ok", 100, transaction.AccountBBVA))
	out.Reject(3, errors.New("bad amount"), []string{"Importe"}, []string{"x"})

	require.Len(t, out.Transactions, 1)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "row 3")
}

func TestFailed(t *testing.T) {
	out := statement.Failed(errors.New("missing columns"))

	assert.Empty(t, out.Transactions)
	assert.Equal(t, []string{"missing columns"}, out.Errors)
}
