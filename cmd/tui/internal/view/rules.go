package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gastos/internal/rules"
)

// RulesModel shows the loaded categorization rules and lets the user try a
// description against them.
type RulesModel struct {
	engine    *rules.Engine
	descInput textinput.Model
}

func NewRulesModel(engine *rules.Engine) RulesModel {
	ti := textinput.New()
	ti.Placeholder = "Transaction description"
	ti.Width = 50
	ti.Focus()

	return RulesModel{engine: engine, descInput: ti}
}

func (m RulesModel) Title() string     { return "Categorization Rules" }
func (m RulesModel) ShortHelp() string { return "Type to test a description | Esc: back" }

func (m RulesModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)

	return m, cmd
}

func (m RulesModel) View() string {
	var b strings.Builder

	all := m.engine.Rules()
	if len(all) == 0 {
		b.WriteString("No rules loaded. Transactions are imported uncategorized.\n\n")
	} else {
		fmt.Fprintf(&b, "%d rules, highest priority first:\n\n", len(all))

		for _, r := range all {
			fmt.Fprintf(&b, "%4d  %-24s %s\n", r.Priority, r.Name, describeRule(r))
		}

		b.WriteString("\n")
	}

	b.WriteString(m.descInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.verdict())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m RulesModel) verdict() string {
	desc := m.descInput.Value()
	if desc == "" {
		return ""
	}

	rule, ok := m.engine.Match(desc)
	if !ok {
		return lipgloss.NewStyle().Faint(true).Render("No rule matches.")
	}

	c, ok := m.engine.Classify(desc)
	if !ok {
		return fmt.Sprintf("Matched %s, which leaves it uncategorized.", activeStyle(rule.Name))
	}

	return fmt.Sprintf("Matched %s: %s / %s", activeStyle(rule.Name), c.Category, c.Subcategory)
}

func describeRule(r rules.Rule) string {
	var conds []string
	if r.Exact != "" {
		conds = append(conds, fmt.Sprintf("is %q", r.Exact))
	}

	if r.Contains != "" {
		conds = append(conds, fmt.Sprintf("contains %q", r.Contains))
	}

	target := r.Category
	if r.Subcategory != "" {
		target += " / " + r.Subcategory
	}

	if target == "" {
		target = "(uncategorized)"
	}

	return strings.Join(conds, " or ") + " -> " + target
}
