package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/ascend-app/ascend/internal/cli"
	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	}

	switch m.state {
	case stateAddHabit:
		return m.updateAddHabit(msg)
	case stateConfirmArchive:
		return m.updateConfirmArchive(msg)
	default:
		return m.updateToday(msg)
	}
}

func (m Model) updateToday(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		// Let the list's filter input capture keystrokes first.
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Done):
			m.recordCheckin(models.CheckinDone)
			return m, nil
		case key.Matches(msg, m.keys.Partial):
			m.recordCheckin(models.CheckinPartial)
			return m, nil
		case key.Matches(msg, m.keys.Skip):
			m.recordCheckin(models.CheckinSkipped)
			return m, nil
		case key.Matches(msg, m.keys.Add):
			m.formData = &habitForm{cadence: "daily", moment: "morning", difficulty: "1"}
			m.form = newHabitForm(m.formData)
			m.state = stateAddHabit
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Archive):
			if _, ok := m.selectedHabit(); ok {
				m.state = stateConfirmArchive
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) recordCheckin(status models.CheckinStatus) {
	habit, ok := m.selectedHabit()
	if !ok {
		return
	}

	checkin := models.Checkin{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       m.today,
		Status:    status,
		Effort:    1,
		CreatedAt: time.Now(),
	}
	state, points, _, err := cli.RecordCheckin(m.store, habit, checkin)
	if err != nil {
		m.statusMsg = dangerStyle.Render(err.Error())
		return
	}

	msg := fmt.Sprintf("%s %s · streak %d", habit.Name, status, state.Current)
	if points > 0 {
		msg += fmt.Sprintf(" · +%d XP", points)
	}
	m.statusMsg = statusStyle.Render(msg)
	m.refresh()
}

func newHabitForm(data *habitForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&data.name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Cadence").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekdays", "weekdays"),
				).
				Value(&data.cadence),
			huh.NewSelect[string]().
				Title("Moment").
				Options(
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Midday", "midday"),
					huh.NewOption("Evening", "evening"),
				).
				Value(&data.moment),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(
					huh.NewOption("1 - Easy", "1"),
					huh.NewOption("2 - Medium", "2"),
					huh.NewOption("3 - Hard", "3"),
				).
				Value(&data.difficulty),
		),
	)
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.addHabit()
		m.form = nil
		m.state = stateToday
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.state = stateToday
		return m, nil
	}
	return m, cmd
}

func (m *Model) addHabit() {
	cadence, err := validation.ParseCadence(m.formData.cadence)
	if err != nil {
		m.statusMsg = dangerStyle.Render(err.Error())
		return
	}
	moment, err := validation.ParseMoment(m.formData.moment)
	if err != nil {
		m.statusMsg = dangerStyle.Render(err.Error())
		return
	}
	difficulty, _ := strconv.Atoi(m.formData.difficulty)

	if _, err := m.store.GetHabitByName(m.formData.name); err == nil {
		m.statusMsg = dangerStyle.Render(fmt.Sprintf("habit %q already exists", m.formData.name))
		return
	}

	habit := models.Habit{
		ID:         uuid.New().String(),
		UserID:     constants.LocalUserID,
		Name:       m.formData.name,
		Cadence:    cadence,
		Moment:     moment,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
	if err := m.store.AddHabit(habit); err != nil {
		m.statusMsg = dangerStyle.Render("failed to add habit: " + err.Error())
		return
	}

	m.statusMsg = statusStyle.Render(fmt.Sprintf("Added habit %q", habit.Name))
	m.refresh()
}

func (m Model) updateConfirmArchive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if habit, ok := m.selectedHabit(); ok {
				if err := m.store.ArchiveHabit(habit.ID); err != nil {
					m.statusMsg = dangerStyle.Render("failed to archive habit: " + err.Error())
				} else {
					m.statusMsg = statusStyle.Render(fmt.Sprintf("Archived habit %q", habit.Name))
					m.refresh()
				}
			}
			m.state = stateToday
			return m, nil
		case "n", "N", "esc":
			m.state = stateToday
			return m, nil
		}
	}
	return m, nil
}
