package models

import (
	"context"

	"github.com/PizzaHomicide/sedai/internal/analysis"
	"github.com/PizzaHomicide/sedai/internal/config"
	"github.com/PizzaHomicide/sedai/internal/export"
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/theme"
	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Exporter writes a grid image to a directory and returns the file written
type Exporter interface {
	Export(ctx context.Context, view export.View, opts export.Options, dir string) (string, error)
}

// AppModel is the main application model that coordinates all child models.  It is the high level wrapper.
type AppModel struct {
	config        *config.Config
	width, height int

	grid *GridModel
	// modal is shown over the grid when set
	modal Model

	analyzer analysis.Analyzer
	exporter Exporter
}

// NewAppModel creates a new instance of the main application model
func NewAppModel(cfg *config.Config, svc *service.GridService, analyzer analysis.Analyzer, exporter Exporter) AppModel {
	return AppModel{
		config:   cfg,
		grid:     NewGridModel(cfg, svc),
		analyzer: analyzer,
		exporter: exporter,
	}
}

func (m AppModel) Init() tea.Cmd {
	log.Info("Initialising Sedai TUI", "user_id", m.config.Grid.UserID)
	return m.grid.Init()
}

// Update handles messages and updates the models as appropriate
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextGlobal) {
		case kb.ActionQuit:
			log.Info("Quit command received.  Shutting down...")
			return m, tea.Quit
		case kb.ActionToggleHelp:
			if help, ok := m.modal.(*HelpModel); ok {
				log.Debug("Closing help", "context", help.context)
				m.modal = nil
				return m, nil
			}
			helpContext := ViewGrid
			if m.modal != nil {
				helpContext = m.modal.ViewType()
			}
			log.Debug("Help requested", "context", helpContext)
			return m.openModal(NewHelpModel(helpContext))
		case kb.ActionBack:
			// Handle closing modal when esc is pressed if any is active
			if m.modal != nil {
				m.modal = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		log.Debug("Window size changed", "old_width", m.width, "new_width", msg.Width, "old_height", m.height, "new_height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

		// Propagate new window size to all views so they are aware and can render correctly
		m.grid.Resize(msg.Width, msg.Height)
		if m.modal != nil {
			m.modal.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case HandledMsg:
		log.Trace("Message handled", "source", msg.Source)
		return m, nil

	case CloseModalMsg:
		m.modal = nil
		return m, nil

	case QuerySubmittedMsg:
		m.modal = nil
		userID := msg.Query.UserID
		m.grid.savePreference(func(c *config.Config) { c.Grid.UserID = userID })
		return m, m.grid.Submit(msg.Query)

	case OpenUserInputMsg:
		q := m.grid.Query()
		return m.openModal(NewUserInputModel(q.UserID, q.StartYear))

	case OpenThemeMenuMsg:
		return m.openModal(newThemeMenu(m.grid.Theme().Key))

	case ThemeSelectedMsg:
		m.modal = nil
		m.grid.SetTheme(msg.Key)
		return m, m.grid.Notify("主题: "+m.grid.Theme().Name, false)

	case ExportRequestedMsg:
		return m, tea.Batch(m.grid.Notify("正在导出图片...", false), m.exportCmd())

	case ExportCompletedMsg:
		return m, m.grid.Notify("已保存: "+msg.Path, false)

	case ExportFailedMsg:
		log.Error("Export failed", "error", msg.Error)
		return m, m.grid.Notify("图片生成失败: "+msg.Error.Error(), true)

	case AnalysisRequestedMsg:
		snap := m.grid.Snapshot()
		// A refresh can land between the key press and this message
		if snap.State != service.StateReady || snap.Result == nil {
			log.Debug("Analysis requested without a loaded grid", "query_id", snap.ID, "state", snap.State)
			return m, m.grid.Notify("Load a grid before asking the critic", true)
		}
		model, cmd := m.openModal(NewAnalysisModel(snap.ID, snap.Query.UserID))
		return model, tea.Batch(cmd, m.analysisCmd(snap))

	case AnalysisCompletedMsg:
		if _, ok := m.modal.(*AnalysisModel); ok {
			return m.updateModal(msg)
		}
		log.Debug("Analysis arrived after its view was closed", "query_id", msg.ID)
		return m, nil

	case GridLoadedMsg, ClearNotificationMsg:
		return m.updateGrid(msg)

	case spinner.TickMsg:
		// Ticks carry their spinner's id, so each spinner ignores the others
		var cmds []tea.Cmd
		_, gridCmd := m.grid.Update(msg)
		cmds = append(cmds, gridCmd)
		if m.modal != nil {
			var modalCmd tea.Cmd
			m.modal, modalCmd = m.modal.Update(msg)
			cmds = append(cmds, modalCmd)
		}
		return m, tea.Batch(cmds...)
	}

	// Prioritise delegating messages to a modal if one is active
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m.updateGrid(msg)
}

func (m AppModel) View() string {
	// If there is an active modal it takes precedence
	if m.modal != nil {
		return m.modal.View()
	}
	return m.grid.View()
}

func (m AppModel) openModal(modal Model) (tea.Model, tea.Cmd) {
	modal.Resize(m.width, m.height)
	m.modal = modal
	return m, modal.Init()
}

func (m AppModel) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	grid, cmd := m.grid.Update(msg)
	m.grid = grid.(*GridModel)
	return m, cmd
}

func (m AppModel) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m AppModel) exportCmd() tea.Cmd {
	view := m.grid.ExportView()
	opts := m.grid.ExportOptions(m.config.Export.Scale)
	dir := m.config.Export.Dir
	exporter := m.exporter

	return func() tea.Msg {
		path, err := exporter.Export(context.Background(), view, opts, dir)
		if err != nil {
			return ExportFailedMsg{Error: err}
		}
		return ExportCompletedMsg{Path: path}
	}
}

func (m AppModel) analysisCmd(snap service.Snapshot) tea.Cmd {
	analyzer := m.analyzer
	return func() tea.Msg {
		text := analyzer.Analyze(context.Background(), snap.Result.Buckets)
		return AnalysisCompletedMsg{ID: snap.ID, Text: text}
	}
}

// newThemeMenu lists every theme, with the cursor on the active one
func newThemeMenu(current string) *MenuModel {
	var items []MenuItem
	cursor := 0
	for i, t := range theme.All() {
		key := t.Key
		if key == current {
			cursor = i
		}
		items = append(items, MenuItem{
			Text:     t.Name + " (" + t.Key + ")",
			Swatches: []string{t.Primary, t.Light},
			Active:   key == current,
			Command:  func() tea.Msg { return ThemeSelectedMsg{Key: key} },
		})
	}
	return NewMenuModel("选择主题", items).WithCursor(cursor)
}
