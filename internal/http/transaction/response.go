package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/gastos/internal/money"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

type transactionResponse struct {
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Amount      int64               `json:"amount"`
	Display     string              `json:"display_amount"`
	Account     transaction.Account `json:"account"`
	Category    string              `json:"category,omitempty"`
	Subcategory string              `json:"subcategory,omitempty"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		Date:        tx.Date.Format(time.DateOnly),
		Description: tx.Description,
		Amount:      tx.Amount,
		Display:     money.Format(tx.Amount),
		Account:     tx.Account,
		Category:    tx.Category,
		Subcategory: tx.Subcategory,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
