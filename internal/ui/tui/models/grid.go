package models

import (
	"context"
	"fmt"
	"time"

	"github.com/PizzaHomicide/sedai/internal/aggregate"
	"github.com/PizzaHomicide/sedai/internal/config"
	"github.com/PizzaHomicide/sedai/internal/export"
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/theme"
	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// notificationTimeout is how long a status bar notification stays up
var notificationTimeout = 4 * time.Second

// GridModel is the main view.  It shows the grid of the current query and owns the theme and export preferences.
type GridModel struct {
	width, height int
	service       *service.GridService
	snapshot      service.Snapshot
	query         service.Query

	themeKey      string
	exportProfile bool
	exportChart   bool

	viewport    viewport.Model
	loading     *LoadingModel
	searchInput textinput.Model
	searchMode  bool

	notification    string
	notificationErr bool
	notificationSeq int

	// persist saves preference changes.  Replaced in tests.
	persist func(func(*config.Config)) error
}

func NewGridModel(cfg *config.Config, svc *service.GridService) *GridModel {
	input := textinput.New()
	input.Placeholder = "Highlight titles..."
	input.Width = 30

	themeKey := theme.Get(cfg.Grid.Theme).Key

	return &GridModel{
		service: svc,
		query: service.Query{
			UserID:    cfg.Grid.UserID,
			StartYear: cfg.Grid.StartYear,
		},
		themeKey:      themeKey,
		exportProfile: cfg.Grid.IncludeProfile(),
		exportChart:   cfg.Grid.IncludeChart(),
		viewport:      viewport.New(0, 0),
		searchInput:   input,
		persist:       config.UpdateConfig,
	}
}

func (m *GridModel) ViewType() View {
	return ViewGrid
}

// Init loads the grid of the configured user straight away
func (m *GridModel) Init() tea.Cmd {
	if m.query.UserID == "" {
		return nil
	}
	return m.Submit(m.query)
}

// Submit starts loading q.  Any query still in flight is superseded.
func (m *GridModel) Submit(q service.Query) tea.Cmd {
	id := m.service.Begin(q)
	m.snapshot = m.service.Snapshot()
	m.query = m.snapshot.Query

	m.loading = NewLoadingModel("正在加载数据...").
		WithTitle("Anime Sedai").
		WithAccent(m.Theme().Primary).
		WithDetail(fmt.Sprintf("用户 %s · %d - %d", m.query.UserID, m.query.StartYear, m.service.CurrentYear()))
	m.loading.Resize(m.width, m.height)

	svc := m.service
	run := func() tea.Msg {
		svc.Execute(context.Background(), id, q)
		return GridLoadedMsg{ID: id}
	}

	return tea.Batch(m.loading.Init(), run)
}

func (m *GridModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GridLoadedMsg:
		if !m.service.IsCurrent(msg.ID) {
			log.Debug("Ignoring result of superseded query", "query_id", msg.ID)
			return m, nil
		}
		m.snapshot = m.service.Snapshot()
		m.loading = nil
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.loading != nil {
			loading, cmd := m.loading.Update(msg)
			m.loading = loading.(*LoadingModel)
			return m, cmd
		}
		return m, nil

	case ClearNotificationMsg:
		if msg.Seq == m.notificationSeq {
			m.notification = ""
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m, m.handleSearchModeKeyMsg(msg)
		}
		return m, m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *GridModel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	action := kb.GetActionByKey(msg, kb.ContextGrid)
	switch action {
	case kb.ActionEditUser:
		return func() tea.Msg { return OpenUserInputMsg{} }

	case kb.ActionRefreshGrid:
		if m.query.UserID == "" {
			return Handled("grid:refresh:no_user")
		}
		return m.Submit(m.query)

	case kb.ActionStartYearEarlier, kb.ActionStartYearLater:
		return m.shiftStartYear(action)

	case kb.ActionCycleTheme:
		m.SetTheme(theme.Next(m.themeKey).Key)
		return m.notify("主题: "+m.Theme().Name, false)

	case kb.ActionChooseTheme:
		return func() tea.Msg { return OpenThemeMenuMsg{} }

	case kb.ActionToggleExportProfile:
		m.exportProfile = !m.exportProfile
		include := m.exportProfile
		m.savePreference(func(c *config.Config) { c.Grid.ExportProfile = &include })
		return m.notify("导出个人信息: "+onOff(include), false)

	case kb.ActionToggleExportChart:
		m.exportChart = !m.exportChart
		include := m.exportChart
		m.savePreference(func(c *config.Config) { c.Grid.ExportChart = &include })
		return m.notify("导出统计图表: "+onOff(include), false)

	case kb.ActionExport:
		if m.snapshot.State != service.StateReady {
			return m.notify("Nothing to export yet", true)
		}
		return func() tea.Msg { return ExportRequestedMsg{} }

	case kb.ActionAnalyze:
		if m.snapshot.State != service.StateReady {
			return m.notify("Load a grid before asking the critic", true)
		}
		return func() tea.Msg { return AnalysisRequestedMsg{} }

	case kb.ActionEnableSearch:
		if m.snapshot.State != service.StateReady {
			return Handled("grid:search:not_ready")
		}
		m.searchMode = true
		m.searchInput.Focus()
		m.refreshContent()
		return Handled("search:enable")

	case kb.ActionMoveUp:
		m.viewport.LineUp(1)
		return Handled("scroll:up")
	case kb.ActionMoveDown:
		m.viewport.LineDown(1)
		return Handled("scroll:down")
	case kb.ActionPageUp:
		m.viewport.ViewUp()
		return Handled("scroll:pgup")
	case kb.ActionPageDown:
		m.viewport.ViewDown()
		return Handled("scroll:pgdown")
	case kb.ActionMoveTop:
		m.viewport.GotoTop()
		return Handled("scroll:top")
	case kb.ActionMoveBottom:
		m.viewport.GotoBottom()
		return Handled("scroll:bottom")
	}

	return nil
}

func (m *GridModel) handleSearchModeKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		// Cancels search, clearing the highlight
		m.searchMode = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.refreshContent()
		return Handled("search:exit")
	case kb.ActionSearchComplete:
		m.searchMode = false
		m.searchInput.Blur()
		m.refreshContent()
		return Handled("search:apply")
	}

	// Let the text input model handle other keys
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Highlight as we type
	m.refreshContent()
	return cmd
}

func (m *GridModel) shiftStartYear(action kb.Action) tea.Cmd {
	q := m.query
	if action == kb.ActionStartYearEarlier {
		q.StartYear--
	} else {
		q.StartYear++
	}

	current := m.service.CurrentYear()
	if q.StartYear < aggregate.MinStartYear || q.StartYear > current || q.UserID == "" {
		return Handled("grid:start_year:out_of_range")
	}

	startYear := q.StartYear
	m.savePreference(func(c *config.Config) { c.Grid.StartYear = startYear })
	return m.Submit(q)
}

// SetTheme switches the grid colours and remembers the choice
func (m *GridModel) SetTheme(key string) {
	m.themeKey = theme.Get(key).Key
	themeKey := m.themeKey
	m.savePreference(func(c *config.Config) { c.Grid.Theme = themeKey })
	m.refreshContent()
}

// Theme returns the active theme
func (m *GridModel) Theme() theme.Theme {
	return theme.Get(m.themeKey)
}

// Snapshot returns the state the grid is currently showing
func (m *GridModel) Snapshot() service.Snapshot {
	return m.snapshot
}

// Query returns the most recently submitted query
func (m *GridModel) Query() service.Query {
	return m.query
}

// ExportView returns what should be drawn into an exported image
func (m *GridModel) ExportView() export.View {
	return export.View{
		UserID:  m.snapshot.Query.UserID,
		Profile: m.snapshot.Profile,
		Result:  m.snapshot.Result,
	}
}

// ExportOptions returns the export settings currently selected
func (m *GridModel) ExportOptions(scale float64) export.Options {
	return export.Options{
		IncludeProfile: m.exportProfile,
		IncludeChart:   m.exportChart,
		Theme:          m.Theme(),
		Scale:          scale,
	}
}

// Notify shows a short lived message in the status bar
func (m *GridModel) Notify(text string, isErr bool) tea.Cmd {
	return m.notify(text, isErr)
}

func (m *GridModel) notify(text string, isErr bool) tea.Cmd {
	m.notificationSeq++
	m.notification = text
	m.notificationErr = isErr

	seq := m.notificationSeq
	return tea.Tick(notificationTimeout, func(time.Time) tea.Msg {
		return ClearNotificationMsg{Seq: seq}
	})
}

func (m *GridModel) savePreference(update func(*config.Config)) {
	if m.persist == nil {
		return
	}
	if err := m.persist(update); err != nil {
		log.Warn("Failed to save grid preference", "error", err)
	}
}

func (m *GridModel) Resize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = max(width, 1)
	m.viewport.Height = max(height-gridChromeHeight, 1)
	if m.loading != nil {
		m.loading.Resize(width, height)
	}
	m.refreshContent()
}

func onOff(b bool) string {
	if b {
		return "开"
	}
	return "关"
}
