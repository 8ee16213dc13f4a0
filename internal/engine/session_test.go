package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"smarthabit/internal/models"
	"smarthabit/internal/storage"
)

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	session, err := NewSession(store)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session, path
}

func TestSession_CompleteAwardsXPAndPersists(t *testing.T) {
	session, path := newTestSession(t)

	habit, err := session.AddHabit("Run", "🏃", models.CategoryHealth, models.FrequencyDaily, models.EffortMedium, true)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	res, _, err := session.Complete(habit.ID, models.SentimentPositive, "felt great")
	if err != nil {
		t.Fatalf("failed to complete habit: %v", err)
	}
	if res.XPGained != 20 {
		t.Errorf("expected 20 XP for a positive first completion, got %d", res.XPGained)
	}

	state := session.State()
	if state.TotalXP != 20 {
		t.Errorf("expected 20 total XP, got %d", state.TotalXP)
	}
	if !state.CompletedOnDay(habit.ID, time.Now()) {
		t.Error("habit must be marked completed today")
	}

	// Reopen the store and confirm the completion survived.
	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	persisted, err := reopened.ExportAllData()
	if err != nil {
		t.Fatalf("failed to export reloaded state: %v", err)
	}
	if persisted.TotalXP != 20 {
		t.Errorf("expected persisted 20 XP, got %d", persisted.TotalXP)
	}
	if len(persisted.Habits) != 1 || persisted.Habits[0].Streak != 1 {
		t.Errorf("expected persisted habit with streak 1, got %+v", persisted.Habits)
	}
}

func TestSession_CompleteTwiceSameDay(t *testing.T) {
	session, _ := newTestSession(t)

	habit, err := session.AddHabit("Read", "📚", models.CategoryLearning, models.FrequencyDaily, models.EffortLow, false)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, _, err := session.Complete(habit.ID, models.SentimentNeutral, ""); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	_, _, err = session.Complete(habit.ID, models.SentimentNeutral, "")
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("expected ErrAlreadyCompleted, got %v", err)
	}

	if got := session.State().TotalXP; got != 10 {
		t.Errorf("rejected completion must not grant XP, got %d", got)
	}
}

func TestSession_CompleteUnknownHabit(t *testing.T) {
	session, _ := newTestSession(t)

	_, _, err := session.Complete("no-such-id", models.SentimentNeutral, "")
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestSession_CompleteInvalidSentiment(t *testing.T) {
	session, _ := newTestSession(t)

	_, _, err := session.Complete("anything", models.Sentiment("ecstatic"), "")
	if err == nil {
		t.Fatal("expected an error for invalid sentiment")
	}
}

func TestSession_StreakBadgeUnlocksOnDaySeven(t *testing.T) {
	session, _ := newTestSession(t)
	clock := day("2026-03-01")
	session.now = func() time.Time { return clock }

	habit, err := session.AddHabit("Meditate", "🧘", models.CategoryMindfulness, models.FrequencyDaily, models.EffortLow, false)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, badges, err := session.Complete(habit.ID, models.SentimentNeutral, ""); err != nil {
			t.Fatalf("completion %d failed: %v", i+1, err)
		} else if len(badges) != 0 {
			t.Fatalf("no badge expected before day 7, got %v on day %d", badges, i+1)
		}
		clock = clock.AddDate(0, 0, 1)
	}

	res, badges, err := session.Complete(habit.ID, models.SentimentNeutral, "")
	if err != nil {
		t.Fatalf("day 7 completion failed: %v", err)
	}
	if res.Streak != 7 || !res.Milestone {
		t.Fatalf("expected a streak-7 milestone, got %+v", res)
	}

	found := false
	for _, b := range badges {
		if b.ID == models.BadgeStreak7 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the 7-day badge on day 7, got %v", badges)
	}

	b, _ := session.State().BadgeByID(models.BadgeStreak7)
	if !b.Unlocked || b.UnlockedAt == nil {
		t.Error("badge must be unlocked with a timestamp in the session state")
	}
}

func TestSession_SameLocalDayRejectedAfterReload(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	path := filepath.Join(t.TempDir(), "test.db")

	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	session, err := NewSession(store)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	clock := time.Date(2026, 3, 2, 8, 0, 0, 0, tokyo)
	session.now = func() time.Time { return clock }

	habit, err := session.AddHabit("Run", "🏃", models.CategoryHealth, models.FrequencyDaily, models.EffortMedium, true)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, _, err := session.Complete(habit.ID, models.SentimentNeutral, ""); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	// The store hands 08:00 UTC+9 back as 23:00 UTC on the previous date;
	// a second completion an hour later on the same local day must still
	// be rejected.
	reopened := storage.NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	defer reopened.Close()
	session2, err := NewSession(reopened)
	if err != nil {
		t.Fatalf("failed to create second session: %v", err)
	}
	session2.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, tokyo) }

	_, _, err = session2.Complete(habit.ID, models.SentimentNeutral, "")
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted after reload, got %v", err)
	}

	state := session2.State()
	if state.TotalXP != 10 {
		t.Errorf("rejected completion must not grant XP again, got %d", state.TotalXP)
	}
	if state.Habits[0].Streak != 1 {
		t.Errorf("rejected completion must not extend the streak, got %d", state.Habits[0].Streak)
	}
}

// failingStore wraps a working provider and fails the named operations.
type failingStore struct {
	storage.Provider
	failXP     bool
	failCreate bool
}

func (f *failingStore) UpdateUserXP(userID string, totalXP, level int) error {
	if f.failXP {
		return fmt.Errorf("%w: disk full", storage.ErrStorageUnavailable)
	}
	return f.Provider.UpdateUserXP(userID, totalXP, level)
}

func (f *failingStore) CreateHabit(h models.Habit) error {
	if f.failCreate {
		return fmt.Errorf("%w: habit %s", storage.ErrConstraintViolation, h.ID)
	}
	return f.Provider.CreateHabit(h)
}

func TestSession_PersistFailureKeepsMemoryState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	inner := storage.NewJSONStore(path)
	if err := inner.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	store := &failingStore{Provider: inner, failXP: true}

	session, err := NewSession(store)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	habit, err := session.AddHabit("Run", "🏃", models.CategoryHealth, models.FrequencyDaily, models.EffortMedium, true)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	res, _, err := session.Complete(habit.ID, models.SentimentNeutral, "")

	var durability *DurabilityError
	if !errors.As(err, &durability) {
		t.Fatalf("expected a DurabilityError, got %v", err)
	}
	if !res.Applied {
		t.Error("completion must still apply in memory")
	}
	if got := session.State().TotalXP; got != 10 {
		t.Errorf("in-memory state must keep the XP, got %d", got)
	}
	if !errors.Is(err, storage.ErrStorageUnavailable) {
		t.Error("DurabilityError must wrap the underlying store error")
	}
}

func TestSession_AddHabitConstraintViolationRevertsMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	inner := storage.NewJSONStore(path)
	if err := inner.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	store := &failingStore{Provider: inner, failCreate: true}

	session, err := NewSession(store)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	_, err = session.AddHabit("Run", "🏃", models.CategoryHealth, models.FrequencyDaily, models.EffortMedium, true)
	if !errors.Is(err, storage.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
	if got := len(session.State().Habits); got != 0 {
		t.Errorf("rejected habit must not stay in memory, got %d habits", got)
	}
}

func TestSession_Reset(t *testing.T) {
	session, path := newTestSession(t)

	habit, err := session.AddHabit("Run", "🏃", models.CategoryHealth, models.FrequencyDaily, models.EffortMedium, true)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, _, err := session.Complete(habit.ID, models.SentimentPositive, ""); err != nil {
		t.Fatalf("failed to complete habit: %v", err)
	}

	if err := session.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	state := session.State()
	if state.TotalXP != 0 || state.Level != 1 || len(state.Habits) != 0 {
		t.Errorf("expected seeded state after reset, got %+v", state)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	persisted, err := reopened.ExportAllData()
	if err != nil {
		t.Fatalf("failed to export reloaded state: %v", err)
	}
	if persisted.TotalXP != 0 || len(persisted.Habits) != 0 {
		t.Errorf("reset must be persisted, got %+v", persisted)
	}
}

func TestSession_DeleteHabit(t *testing.T) {
	session, _ := newTestSession(t)

	habit, err := session.AddHabit("Run", "🏃", models.CategoryHealth, models.FrequencyDaily, models.EffortMedium, true)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if err := session.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(session.State().Habits) != 0 {
		t.Error("habit must be gone from the session state")
	}

	if err := session.DeleteHabit("no-such-id"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}
