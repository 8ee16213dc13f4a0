package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"smarthabit/internal/engine"
	"smarthabit/internal/logger"
	"smarthabit/internal/models"
	"smarthabit/internal/storage"
)

var nowFunc = time.Now

type Context struct {
	ConfigPath string
	Debug      bool

	store   storage.Provider
	session *engine.Session
}

// Session opens the store (falling back to the flat store when the
// structured one is unavailable) and loads the game state. Opened once and
// reused across a command's lifetime.
func (ctx *Context) Session() (*engine.Session, error) {
	if ctx.session != nil {
		return ctx.session, nil
	}

	store, warn, err := storage.OpenWithFallback(ctx.ConfigPath)
	if err != nil {
		return nil, err
	}
	if warn != nil {
		logger.Get().Warn("structured store unavailable, using flat fallback",
			"path", store.GetConfigPath(), "err", warn)
		fmt.Fprintf(os.Stderr, "Warning: %v (using fallback store at %s)\n", warn, store.GetConfigPath())
	}

	session, err := engine.NewSession(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	ctx.store = store
	ctx.session = session
	return session, nil
}

// Store returns the active provider, opening the session if needed.
func (ctx *Context) Store() (storage.Provider, error) {
	if _, err := ctx.Session(); err != nil {
		return nil, err
	}
	return ctx.store, nil
}

func (ctx *Context) Close() error {
	if ctx.store != nil {
		return ctx.store.Close()
	}
	return nil
}

// findHabit resolves a habit reference: an exact id first, then a unique
// case-insensitive name prefix.
func findHabit(state models.GameState, ref string) (models.Habit, error) {
	if h, ok := state.HabitByID(ref); ok {
		return h, nil
	}

	needle := strings.ToLower(strings.TrimSpace(ref))
	var matches []models.Habit
	for _, h := range state.Habits {
		if strings.HasPrefix(strings.ToLower(h.Name), needle) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	default:
		names := make([]string, len(matches))
		for i, h := range matches {
			names[i] = h.Name
		}
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func parseSentiment(s string) (models.Sentiment, error) {
	sentiment := models.Sentiment(strings.ToLower(strings.TrimSpace(s)))
	if !sentiment.IsValid() {
		return "", fmt.Errorf("invalid sentiment %q (positive|neutral|negative)", s)
	}
	return sentiment, nil
}

// encouragement returns the check-in copy shown after a completion with the
// given sentiment.
func encouragement(s models.Sentiment) string {
	switch s {
	case models.SentimentPositive:
		return "You're in a great headspace! Keep channeling that energy."
	case models.SentimentNegative:
		return "It's okay, small steps still count. Rest and try again tomorrow."
	default:
		return "Consistency matters. You showed up, and that counts."
	}
}

func xpBar(totalXP int, width int) string {
	p := engine.LevelProgress(totalXP)
	filled := int(p.Percentage / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %d/%d XP",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), p.Current, p.Target)
}
