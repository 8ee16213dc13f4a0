package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	tea "github.com/charmbracelet/bubbletea"

	"smarthabit/internal/engine"
	"smarthabit/internal/models"
)

var nowFunc = time.Now

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
		m.help.Width = sz.Width
		return m, nil
	}

	switch m.state {
	case StateComplete, StateAddHabit:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	habits := m.session.State().Habits

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.statusMsg = ""

	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.statusMsg = ""

	case key.Matches(keyMsg, m.keys.Up):
		if m.state == StateHabits && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.state == StateHabits && m.cursor < len(habits)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Complete):
		if m.state != StateHabits {
			break
		}
		habit, ok := m.selectedHabit()
		if !ok {
			break
		}
		if m.session.State().CompletedOnDay(habit.ID, nowFunc()) {
			m.statusMsg = fmt.Sprintf("%s is already done today", habit.Name)
			break
		}
		m.complete = &CompleteFormModel{Sentiment: models.SentimentNeutral}
		m.form = newCompleteForm(m.complete)
		m.state = StateComplete
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Add):
		if m.state != StateHabits {
			break
		}
		m.habit = &HabitFormModel{
			Emoji:            "✨",
			Category:         models.CategoryHealth,
			Frequency:        models.FrequencyDaily,
			Effort:           models.EffortMedium,
			EmotionalSupport: true,
		}
		m.form = newHabitForm(m.habit)
		m.state = StateAddHabit
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Delete):
		if m.state != StateHabits {
			break
		}
		if habit, ok := m.selectedHabit(); ok {
			m.habitToDeleteID = habit.ID
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case StateComplete:
		m.submitCompletion()
	case StateAddHabit:
		m.submitHabit()
	}
	m.form = nil
	m.state = StateHabits
	return m, cmd
}

func (m *Model) submitCompletion() {
	habit, ok := m.selectedHabit()
	if !ok {
		return
	}
	res, badges, err := m.session.Complete(habit.ID, m.complete.Sentiment, m.complete.Reflection)
	if err != nil {
		var durability *engine.DurabilityError
		if !errors.As(err, &durability) {
			m.statusMsg = fmt.Sprintf("Could not complete %s: %v", habit.Name, err)
			return
		}
		m.statusMsg = fmt.Sprintf("Saved in memory only: %v", durability)
	}

	parts := fmt.Sprintf("%s done! +%d XP, streak %d", habit.Name, res.XPGained, res.Streak)
	if res.LevelUp() {
		parts += fmt.Sprintf(" 🎉 level %d!", res.LevelAfter)
	}
	for _, b := range badges {
		parts += fmt.Sprintf(" %s %s unlocked!", b.Emoji, b.Name)
	}
	if m.statusMsg == "" {
		m.statusMsg = parts
	} else {
		m.statusMsg = parts + " (" + m.statusMsg + ")"
	}
}

func (m *Model) submitHabit() {
	h, err := m.session.AddHabit(
		m.habit.Name, m.habit.Emoji,
		m.habit.Category, m.habit.Frequency, m.habit.Effort,
		m.habit.EmotionalSupport,
	)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Could not add habit: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("Added %s %s", h.Emoji, h.Name)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y":
		if err := m.session.DeleteHabit(m.habitToDeleteID); err != nil {
			m.statusMsg = fmt.Sprintf("Delete failed: %v", err)
		} else {
			m.statusMsg = "Habit deleted"
			if m.cursor > 0 {
				m.cursor--
			}
		}
		m.habitToDeleteID = ""
		m.state = StateHabits
	case "n", "esc", "q":
		m.habitToDeleteID = ""
		m.state = StateHabits
	}
	return m, nil
}
