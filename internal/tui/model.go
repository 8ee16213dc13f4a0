package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/huh"

	tea "github.com/charmbracelet/bubbletea"

	"smarthabit/internal/engine"
	"smarthabit/internal/models"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateProgress
	StateBadges
	StateComplete
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of top-level tabs cycled with tab/shift+tab.
const tabCount = 3

type CompleteFormModel struct {
	Sentiment  models.Sentiment
	Reflection string
}

type HabitFormModel struct {
	Name             string
	Emoji            string
	Category         models.Category
	Frequency        models.Frequency
	Effort           models.Effort
	EmotionalSupport bool
}

type Model struct {
	session *engine.Session
	state   SessionState
	keys    KeyMap
	help    help.Model
	xpBar   progress.Model

	cursor   int
	form     *huh.Form
	complete *CompleteFormModel
	habit    *HabitFormModel

	habitToDeleteID string
	statusMsg       string
	quitting        bool
	width           int
	height          int
}

func NewModel(session *engine.Session) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		session: session,
		state:   StateHabits,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		xpBar:   bar,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) selectedHabit() (models.Habit, bool) {
	habits := m.session.State().Habits
	if m.cursor < 0 || m.cursor >= len(habits) {
		return models.Habit{}, false
	}
	return habits[m.cursor], true
}

func newCompleteForm(fm *CompleteFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Sentiment]().
				Title("How did it feel?").
				Options(
					huh.NewOption("😊 Great", models.SentimentPositive),
					huh.NewOption("😐 Okay", models.SentimentNeutral),
					huh.NewOption("😞 Rough", models.SentimentNegative),
				).
				Value(&fm.Sentiment),
			huh.NewText().
				Title("Reflection (optional)").
				Lines(2).
				Value(&fm.Reflection),
		),
	)
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Emoji").
				Value(&fm.Emoji),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(
					huh.NewOption("Health", models.CategoryHealth),
					huh.NewOption("Focus", models.CategoryFocus),
					huh.NewOption("Learning", models.CategoryLearning),
					huh.NewOption("Mindfulness", models.CategoryMindfulness),
				).
				Value(&fm.Category),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(&fm.Frequency),
			huh.NewSelect[models.Effort]().
				Title("Effort").
				Options(
					huh.NewOption("Low", models.EffortLow),
					huh.NewOption("Medium", models.EffortMedium),
					huh.NewOption("High", models.EffortHigh),
				).
				Value(&fm.Effort),
			huh.NewConfirm().
				Title("Emotional support messages?").
				Value(&fm.EmotionalSupport),
		),
	)
}
