package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gastos/internal/importer"
	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
)

const importTimeout = 5 * time.Minute

// Importer parses and reconciles one export file.
type Importer interface {
	ImportFile(ctx context.Context, bank importer.Bank, r io.Reader, dryRun bool) (reconcile.Result, error)
}

type importState int

const (
	importStateBankSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	svc Importer
	ctx context.Context

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int
	dryRun       bool

	path      string
	result    reconcile.Result
	errorList list.Model

	status string
	err    error
}

// NewImportModel builds the import screen. ctx carries the logger and is
// the parent of every import run.
func NewImportModel(ctx context.Context, svc Importer) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx", ".CSV", ".XLSX"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:         svc,
		ctx:         ctx,
		filePicker:  fp,
		bankOptions: importer.Banks(),
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateBankSelect:
		return "Enter: select | d: toggle dry run | Esc: back"
	case importStateResult:
		return "↑/↓: scroll errors | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateBankSelect:
			return m.updateBankSelect(msg)
		case importStateResult:
			var cmd tea.Cmd
			m.errorList, cmd = m.errorList.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.result = msg.result

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = summary(msg.result, m.dryRun)
		m.errorList = newErrorList(msg.result.Errors)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.path = path
		m.status = fmt.Sprintf("Importing %s from %s...", path, m.selectedBank.Account())

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateBankSelect
		return m, nil
	case importStateResult:
		m.state = importStateBankSelect
		m.err = nil
		m.status = ""
		m.result = reconcile.Result{}

		return m, nil
	case importStateImporting:
		// The run keeps going; its result is shown when it lands.
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case "down", "j":
		if m.bankCursor < len(m.bankOptions)-1 {
			m.bankCursor++
		}
	case "d":
		m.dryRun = !m.dryRun
	case "enter":
		m.selectedBank = m.bankOptions[m.bankCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateBankSelect:
		return m.viewBankSelect()
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	s := "Select Bank:\n\n"

	for i, bank := range m.bankOptions {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, bank.Account())
	}

	mode := "write to ledger"
	if m.dryRun {
		mode = activeStyle("dry run")
	}

	s += fmt.Sprintf("\n[d] Mode: %s", mode)

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewFilePick() string {
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedBank.Account(), m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	color := lipgloss.Color("46")
	if m.result.HasErrors() {
		color = lipgloss.Color("214")
	}

	body := lipgloss.NewStyle().Foreground(color).Render(m.status)
	if len(m.result.Errors) > 0 {
		body += "\n\n" + m.errorList.View()
	}

	return style.Render(body + "\n\n(Esc to go back)")
}

func summary(r reconcile.Result, dryRun bool) string {
	s := fmt.Sprintf("Read %d, inserted %d, duplicates %d", r.TotalRead, r.Inserted, r.Duplicates)
	if r.Skipped > 0 {
		s += fmt.Sprintf(", skipped %d", r.Skipped)
	}

	if len(r.Errors) > 0 {
		s += fmt.Sprintf(", %d errors", len(r.Errors))
	}

	if dryRun {
		s += " (dry run, nothing written)"
	}

	return s + "."
}

// Messages

type importResultMsg struct {
	result reconcile.Result
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	bank, dryRun, parent := m.selectedBank, m.dryRun, m.ctx

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(parent, importTimeout)
		defer cancel()

		result, err := m.svc.ImportFile(ctx, bank, f, dryRun)

		return importResultMsg{result: result, err: err}
	}
}

// Error list

type errorItem string

func (i errorItem) FilterValue() string { return string(i) }

type errorDelegate struct{}

func (d errorDelegate) Height() int                             { return 1 }
func (d errorDelegate) Spacing() int                            { return 0 }
func (d errorDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d errorDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(errorItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%s", cursor, string(item))
}

func newErrorList(errs []string) list.Model {
	items := make([]list.Item, len(errs))
	for i, e := range errs {
		items[i] = errorItem(e)
	}

	l := list.New(items, errorDelegate{}, 120, 12)
	l.Title = "Errors"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}
