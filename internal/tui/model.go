package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ascend-app/ascend/internal/cli"
	"github.com/ascend-app/ascend/internal/engine"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/storage"
	"github.com/ascend-app/ascend/internal/utils"
)

type sessionState int

const (
	stateToday sessionState = iota
	stateAddHabit
	stateConfirmArchive
)

// habitItem is one row of the today list: the habit plus everything the
// row needs to render without touching the store again.
type habitItem struct {
	habit     models.Habit
	state     models.StreakState
	status    models.CheckinStatus
	recorded  bool
	scheduled bool
	overdue   bool
}

func (i habitItem) Title() string {
	marker := "○ "
	if i.recorded {
		switch i.status {
		case models.CheckinDone:
			marker = "✓ "
		case models.CheckinPartial:
			marker = "~ "
		case models.CheckinSkipped:
			marker = "- "
		}
	}
	title := marker + i.habit.Name
	if i.overdue && !i.recorded {
		title += " " + warningStyle.Render("(overdue)")
	}
	return title
}

func (i habitItem) Description() string {
	if !i.scheduled {
		return dimStyle.Render("rest day · " + cli.FormatCadence(i.habit))
	}
	desc := fmt.Sprintf("streak %d (best %d) · consistency %.0f%%",
		i.state.Current, i.state.Best, i.state.EMA*100)
	if i.state.Maintenance {
		desc += " · maintenance"
	}
	return desc
}

func (i habitItem) FilterValue() string { return i.habit.Name }

// habitForm holds the add-habit form inputs before they are parsed into
// a models.Habit.
type habitForm struct {
	name       string
	cadence    string
	moment     string
	difficulty string
}

type Model struct {
	store storage.Provider
	state sessionState
	keys  KeyMap
	help  help.Model
	list  list.Model

	form     *huh.Form
	formData *habitForm

	today     string
	statusMsg string
	width     int
	height    int
}

func NewModel(store storage.Provider) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	m := Model{
		store: store,
		state: stateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		list:  l,
	}
	m.refresh()
	return m
}

// refresh reloads the list from the store. Errors land in the status line
// rather than aborting the session.
func (m *Model) refresh() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.statusMsg = dangerStyle.Render("failed to load settings: " + err.Error())
		return
	}
	today, err := utils.GetTodayInTimezone(settings.Timezone)
	if err != nil {
		m.statusMsg = dangerStyle.Render(err.Error())
		return
	}
	m.today = today

	habits, err := m.store.GetAllHabits(false, false)
	if err != nil {
		m.statusMsg = dangerStyle.Render("failed to load habits: " + err.Error())
		return
	}

	now := time.Now()
	items := make([]list.Item, 0, len(habits))
	for _, habit := range habits {
		item := habitItem{habit: habit}

		resolved := habit
		if resolved.Window.Start == "" || resolved.Window.End == "" {
			resolved.Window = settings.MomentWindow(habit.Moment)
		}
		occs, err := engine.GenerateOccurrences(resolved, now, 1)
		if err == nil && len(occs) > 0 {
			item.scheduled = true
			item.overdue = engine.IsOverdue(occs[0], now)
		}

		if checkin, err := m.store.GetCheckin(habit.ID, today); err == nil && checkin.DeletedAt == nil {
			item.recorded = true
			item.status = checkin.Status
		}
		if state, err := m.store.GetStreakState(habit.ID); err == nil {
			item.state = state
		}

		items = append(items, item)
	}
	m.list.SetItems(items)
}

func (m Model) selectedHabit() (models.Habit, bool) {
	item, ok := m.list.SelectedItem().(habitItem)
	if !ok {
		return models.Habit{}, false
	}
	return item.habit, true
}

func (m Model) Init() tea.Cmd {
	return nil
}
