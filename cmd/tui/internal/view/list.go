package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// Querier reads ledger transactions for an inclusive date range.
type Querier interface {
	QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error)
}

type listState int

const (
	listStatePickRange listState = iota
	listStateBrowse
)

// ListModel browses what is already in the ledger.
type ListModel struct {
	ledger Querier

	state  listState
	picker TimeframePicker
	table  table.Model

	start, end time.Time
	txs        []transaction.Transaction

	// 0 shows every account; i > 0 shows transaction.Accounts[i-1].
	accountFilterIdx int

	loading bool
	err     error
}

func NewListModel(ledger Querier) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Account", Width: 14},
		{Title: "Amount", Width: 10},
		{Title: "Description", Width: 40},
		{Title: "Category", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		ledger: ledger,
		picker: NewTimeframePicker(TimeframeThisWeek),
		table:  t,
	}
}

func (m ListModel) Title() string { return "Ledger" }
func (m ListModel) ShortHelp() string {
	if m.state == listStatePickRange {
		return "Enter: select | Esc: back"
	}
	return "Esc: change range | a: account filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		m.err = msg.err
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case TimeframeSelectedMsg:
		m.start, m.end = msg.Start, msg.End
		m.state = listStateBrowse
		m.loading = true
		m.accountFilterIdx = 0

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStatePickRange:
		return m.updatePickRange(msg)
	case listStateBrowse:
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m ListModel) updatePickRange(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		return m, Back
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.state = listStatePickRange
			m.picker.Reset()
			m.err = nil

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "a":
			m.accountFilterIdx = (m.accountFilterIdx + 1) % (len(transaction.Accounts) + 1)
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.state == listStatePickRange {
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to go back)", m.err))
	}

	expenses, income := m.totals()

	header := fmt.Sprintf(
		"%s to %s | [a] Account: %s | Out: %s | In: %s",
		FormatDate(m.start),
		FormatDate(m.end),
		activeStyle(m.accountLabel()),
		FormatAmount(expenses),
		FormatAmount(income),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m ListModel) accountLabel() string {
	if m.accountFilterIdx == 0 {
		return "All"
	}

	return string(transaction.Accounts[m.accountFilterIdx-1])
}

func (m ListModel) visible() []transaction.Transaction {
	if m.accountFilterIdx == 0 {
		return m.txs
	}

	account := transaction.Accounts[m.accountFilterIdx-1]

	var out []transaction.Transaction

	for _, tx := range m.txs {
		if tx.Account == account {
			out = append(out, tx)
		}
	}

	return out
}

func (m ListModel) totals() (expenses, income int64) {
	for _, tx := range m.visible() {
		if tx.IsExpense() {
			expenses += tx.Amount
		} else {
			income += tx.Amount
		}
	}

	return expenses, income
}

func (m *ListModel) refreshTable() {
	txs := m.visible()

	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		category := tx.Category
		if tx.Subcategory != "" {
			category += " / " + tx.Subcategory
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Account),
			FormatAmount(tx.Amount),
			tx.Description,
			category,
		})
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Messages

type loadListMsg struct {
	txs []transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	start, end := m.start, m.end

	return func() tea.Msg {
		ctx, cancel := LedgerCtx(context.Background())
		defer cancel()

		txs, err := m.ledger.QueryRange(ctx, start, end)

		return loadListMsg{txs: txs, err: err}
	}
}
