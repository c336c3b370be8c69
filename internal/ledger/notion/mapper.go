package notion

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/MrJamesThe3rd/gastos/internal/money"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// Database property names.
const (
	propName        = "Nombre"
	propDate        = "Fecha"
	propAccount     = "Cuenta"
	propExpense     = "Gasto"
	propIncome      = "Ingreso"
	propScript      = "Script"
	propSubcategory = "Subcategoría"
	propCategory    = "Categoría"
)

// TransactionToProperties maps a transaction to page properties. Expenses
// are stored as a positive Gasto; incomes and zero amounts as Ingreso.
func TransactionToProperties(tx transaction.Transaction) notionapi.Properties {
	date := notionapi.Date(tx.Date)

	props := notionapi.Properties{
		propName: notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.Description,
					},
				},
			},
		},
		propDate: notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &date,
			},
		},
		propAccount: notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: string(tx.Account),
			},
		},
		propScript: notionapi.CheckboxProperty{
			Checkbox: true,
		},
	}

	if tx.IsExpense() {
		props[propExpense] = notionapi.NumberProperty{Number: money.ToFloat(tx.AbsAmount())}
	} else {
		props[propIncome] = notionapi.NumberProperty{Number: money.ToFloat(tx.Amount)}
	}

	if tx.Subcategory != "" {
		props[propSubcategory] = notionapi.RelationProperty{
			Relation: []notionapi.Relation{
				{ID: notionapi.PageID(tx.Subcategory)},
			},
		}
	}

	if tx.Category != "" {
		props[propCategory] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: tx.Category,
			},
		}
	}

	return props
}

// PageToTransaction maps a ledger page back to a transaction. Pages without
// a date cannot take part in reconciliation and are reported as not ok.
func PageToTransaction(page notionapi.Page) (transaction.Transaction, bool) {
	dateProp, ok := page.Properties[propDate].(*notionapi.DateProperty)
	if !ok || dateProp.Date == nil || dateProp.Date.Start == nil {
		return transaction.Transaction{}, false
	}

	tx := transaction.Transaction{
		Date: transaction.Day(time.Time(*dateProp.Date.Start)),
	}

	if title, ok := page.Properties[propName].(*notionapi.TitleProperty); ok && len(title.Title) > 0 {
		tx.Description = title.Title[0].PlainText
	}

	if sel, ok := page.Properties[propAccount].(*notionapi.SelectProperty); ok {
		tx.Account = transaction.Account(sel.Select.Name)
	}

	if sel, ok := page.Properties[propCategory].(*notionapi.SelectProperty); ok {
		tx.Category = sel.Select.Name
	}

	if rel, ok := page.Properties[propSubcategory].(*notionapi.RelationProperty); ok && len(rel.Relation) > 0 {
		tx.Subcategory = string(rel.Relation[0].ID)
	}

	expense, _ := page.Properties[propExpense].(*notionapi.NumberProperty)
	income, _ := page.Properties[propIncome].(*notionapi.NumberProperty)

	switch {
	case expense != nil && expense.Number != 0:
		tx.Amount = -money.FromFloat(expense.Number)
	case income != nil:
		tx.Amount = money.FromFloat(income.Number)
	}

	return tx, true
}
