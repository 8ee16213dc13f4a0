package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"smarthabit/internal/engine"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.viewHabits())
	case StateProgress:
		content = docStyle.Render(m.viewProgress())
	case StateBadges:
		content = docStyle.Render(m.viewBadges())
	case StateComplete, StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.statusMsg != "" {
		sections = append(sections, statusStyle.Render(m.statusMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Progress", "Badges"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHabits() string {
	state := m.session.State()
	if len(state.Habits) == 0 {
		return dimStyle.Render("No habits yet. Press 'a' to add one.")
	}

	var b strings.Builder
	today := nowFunc()
	for i, h := range state.Habits {
		line := fmt.Sprintf("%s %s · streak %d", h.Emoji, h.Name, h.Streak)
		if state.CompletedOnDay(h.ID, today) {
			line = doneStyle.Render("✓ " + line)
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewProgress() string {
	state := m.session.State()
	p := engine.LevelProgress(state.TotalXP)

	done := 0
	for _, h := range state.Habits {
		if state.CompletedOnDay(h.ID, nowFunc()) {
			done++
		}
	}

	lines := []string{
		fmt.Sprintf("Level %d", state.Level),
		m.xpBar.ViewAs(p.Percentage / 100),
		fmt.Sprintf("%d/%d XP to next level · %d total", p.Current, p.Target, state.TotalXP),
		"",
		fmt.Sprintf("Today: %d/%d habits done", done, len(state.Habits)),
	}
	if state.LastSentiment != nil {
		lines = append(lines, fmt.Sprintf("Last check-in: %s", *state.LastSentiment))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewBadges() string {
	state := m.session.State()
	var b strings.Builder
	for _, badge := range state.Badges {
		if badge.Unlocked {
			when := ""
			if badge.UnlockedAt != nil {
				when = dimStyle.Render(" · " + humanize.Time(*badge.UnlockedAt))
			}
			b.WriteString(fmt.Sprintf("%s %s%s\n", badge.Emoji, badge.Name, when))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("🔒 %s", badge.Name)) + "\n")
		}
		b.WriteString(dimStyle.Render("   "+badge.Description) + "\n")
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	name := m.habitToDeleteID
	if h, ok := m.session.State().HabitByID(m.habitToDeleteID); ok {
		name = h.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and its history?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
