package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/gastos/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/gastos/internal/app"
	"github.com/MrJamesThe3rd/gastos/internal/config"
	"github.com/MrJamesThe3rd/gastos/internal/export"
	"github.com/MrJamesThe3rd/gastos/internal/logger"
)

type model struct {
	app *app.App
	ctx context.Context

	currentView View

	importView view.ImportModel
	listView   view.ListModel
	rulesView  view.RulesModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewImport View = 1
	ViewList   View = 2
	ViewRules  View = 3
	ViewExport View = 4
)

func initialModel(ctx context.Context, a *app.App) model {
	return model{
		app:         a,
		ctx:         ctx,
		currentView: ViewMenu,
		importView:  view.NewImportModel(ctx, a),
		listView:    view.NewListModel(a.Ledger),
		rulesView:   view.NewRulesModel(a.Rules),
		exportView:  view.NewExportModel(ctx, export.NewService(a.Ledger)),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.ctx, m.app)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.app.Ledger)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewRules
				m.rulesView = view.NewRulesModel(m.app.Rules)

				return m, m.rulesView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.ctx, export.NewService(m.app.Ledger))

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewRules:
		var newModel tea.Model
		newModel, cmd = m.rulesView.Update(msg)
		m.rulesView = newModel.(view.RulesModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Gastos\n\n" +
				"Ledger: " + m.app.Config.Ledger.Backend + "\n\n" +
				"1. Import Statement\n" +
				"2. Browse Ledger\n" +
				"3. Categorization Rules\n" +
				"4. Export Ledger\n\n" +
				"q. Quit",
		)
	case ViewImport:
		return m.importView.View()
	case ViewList:
		return m.listView.View()
	case ViewRules:
		return m.rulesView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile("gastos-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to open log file")
	}
	defer logFile.Close()

	log := logger.NewWithWriter(logFile)
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		log = log.Level(lvl)
	}

	ctx := logger.WithContext(context.Background(), log)

	a, err := app.New(ctx, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to start")
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(ctx, a))
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run TUI")
		os.Exit(1)
	}
}
