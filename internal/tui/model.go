// Package tui implements the interactive dashboard. It is a pure consumer
// of the synchronization layer: it reads through the engine, subscribes to
// cache invalidations, and issues mutation intents. It never writes to the
// cache itself.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/internal/core/cache"
	"github.com/daybook-app/daybook/internal/core/checklist"
	"github.com/daybook-app/daybook/internal/core/plan"
	"github.com/daybook-app/daybook/internal/daybook"
)

type todayLoadedMsg struct {
	today checklist.Today
	err   error
}

type planLoadedMsg struct {
	featured *plan.Featured
	err      error
}

type toggledMsg struct {
	err error
}

type cacheChangedMsg struct {
	key cache.Key
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	engine   *daybook.Engine
	tz       string
	planType plan.Type
	log      zerolog.Logger

	spinner spinner.Model
	loading bool

	today    checklist.Today
	featured *plan.Featured
	cursor   int
	err      error

	// changes receives cache keys from the store subscription; the
	// subscription is registered before the program starts so no
	// notification is missed.
	changes chan cache.Key

	width  int
	height int
}

// New creates the dashboard model and subscribes it to cache changes.
func New(engine *daybook.Engine, tz string, planType plan.Type, log zerolog.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		engine:   engine,
		tz:       tz,
		planType: planType,
		log:      log.With().Str("component", "tui").Logger(),
		spinner:  sp,
		loading:  true,
		changes:  make(chan cache.Key, 16),
	}

	engine.Store().Subscribe(func(key cache.Key) {
		select {
		case m.changes <- key:
		default:
			// Dropping is fine; any pending notification already
			// forces a re-read.
		}
	})

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadToday(),
		m.loadPlan(),
		m.waitForChange(),
	)
}

func (m *Model) loadToday() tea.Cmd {
	return func() tea.Msg {
		today, err := m.engine.ReadToday(context.Background(), m.tz)
		return todayLoadedMsg{today: today, err: err}
	}
}

func (m *Model) loadPlan() tea.Cmd {
	return func() tea.Msg {
		featured, err := m.engine.ReadFeatured(context.Background(), m.planType, m.tz)
		return planLoadedMsg{featured: featured, err: err}
	}
}

func (m *Model) toggle(item checklist.TodayItem) tea.Cmd {
	date := m.today.Date
	update := checklist.Update{ChecklistItemID: item.ID, Completed: !item.Completed}
	return func() tea.Msg {
		_, err := m.engine.ToggleToday(context.Background(), m.tz, date, []checklist.Update{update})
		return toggledMsg{err: err}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		return cacheChangedMsg{key: <-m.changes}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todayLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.today = msg.today
		if m.cursor >= len(m.today.Items) {
			m.cursor = max(len(m.today.Items)-1, 0)
		}
		return m, nil

	case planLoadedMsg:
		if msg.err != nil {
			// The plan pane failing doesn't block the checklist.
			m.log.Debug().Err(msg.err).Msg("featured plan load failed")
			return m, nil
		}
		m.featured = msg.featured
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			// The optimistic value has already been rolled back;
			// just surface the failure.
			m.err = msg.err
		}
		return m, nil

	case cacheChangedMsg:
		// The dashboard re-reads whatever part of its view the changed
		// key backs. The cursor stays put; reads serve provisional
		// values, so toggles feel immediate.
		cmds := []tea.Cmd{m.waitForChange()}
		switch {
		case msg.key.String() == cache.TodayKey(m.tz).String():
			cmds = append(cmds, m.loadToday())
		case msg.key.Kind == "plan/featured":
			cmds = append(cmds, m.loadPlan())
		case msg.key.String() == cache.TemplateKey().String():
			cmds = append(cmds, m.loadToday())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.today.Items)-1 {
			m.cursor++
		}
	case " ", "enter":
		if m.cursor < len(m.today.Items) {
			return m, m.toggle(m.today.Items[m.cursor])
		}
	case "r":
		m.engine.Refresh(cache.TodayKey(m.tz))
		m.engine.Refresh(cache.FeaturedPlanKey(string(m.planType), m.tz))
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s loading checklist…\n", m.spinner.View())
	}

	left := m.viewChecklist()
	right := m.viewPlan()

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := helpStyle.Render("↑/↓ navigate  space toggle  r refresh  q quit")

	out := lipgloss.JoinVertical(lipgloss.Left, panes, help)
	if m.err != nil {
		out = lipgloss.JoinVertical(lipgloss.Left, out, errorStyle.Render("error: "+m.err.Error()))
	}
	return out
}

func (m *Model) viewChecklist() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Today · " + m.today.Date))
	b.WriteString("\n\n")

	if len(m.today.Items) == 0 {
		b.WriteString(mutedStyle.Render("no checklist items"))
	}

	for i, item := range m.today.Items {
		marker := "[ ]"
		line := item.Text
		if item.Completed {
			marker = "[x]"
			line = doneStyle.Render(line)
		}
		row := fmt.Sprintf("%s %s", marker, line)
		if i == m.cursor {
			row = cursorStyle.Render("› ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return paneStyle.Render(b.String())
}

func (m *Model) viewPlan() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Featured plan"))
	b.WriteString("\n\n")

	if m.featured == nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("no %s plan featured", m.planType)))
		return paneStyle.Render(b.String())
	}

	b.WriteString(m.featured.Title)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.featured.PrimaryModel))
	b.WriteString("\n")
	if len(m.featured.Symbols) > 0 {
		b.WriteString(strings.Join(m.featured.Symbols, " "))
		b.WriteString("\n")
	}
	if len(m.featured.KeyLevels) > 0 {
		levels := make([]string, len(m.featured.KeyLevels))
		for i, l := range m.featured.KeyLevels {
			levels[i] = l.String()
		}
		b.WriteString(mutedStyle.Render("levels: " + strings.Join(levels, ", ")))
		b.WriteString("\n")
	}
	if m.featured.Bias != "" {
		b.WriteString("\n")
		b.WriteString(m.featured.Bias)
	}

	return paneStyle.Render(b.String())
}
