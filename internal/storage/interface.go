package storage

import (
	"errors"
	"time"

	"smarthabit/internal/models"
)

var (
	// ErrStorageUnavailable means the backing store could not be opened.
	// Callers fall back to the flat store; this is never fatal.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound means a queried entity is absent. Callers treat it as
	// empty/default.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation means a write broke a uniqueness or foreign
	// key constraint; the operation was aborted.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Provider is the durable store contract the game engine depends on. Both
// the structured SQLite store and the flat JSON store implement it and
// produce identical GameState shapes; the engine never knows which backend
// is active.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// User
	GetUserData(userID string) (models.UserProgress, error)
	UpdateUserXP(userID string, totalXP, level int) error
	UpdateUserSentiment(userID string, sentiment models.Sentiment) error

	// Habits
	GetAllHabits() ([]models.Habit, error)
	CreateHabit(models.Habit) error
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Badges
	GetAllBadges() ([]models.Badge, error)
	UnlockBadge(id string, at time.Time) error

	// Completion log (append-only)
	RecordCompletion(models.CompletionRecord) error
	GetCompletionsForHabit(habitID string) ([]models.CompletionRecord, error)

	// Maintenance
	ExportAllData() (models.GameState, error)
	ResetDatabase() error

	// Utils
	GetConfigPath() string
}
