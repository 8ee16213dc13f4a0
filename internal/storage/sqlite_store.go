package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smarthabit/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.createTables(); err != nil {
		return err
	}

	return s.seed()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'smarthabit init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	// The schema is idempotent; creating tables on load keeps older data
	// files usable after upgrades.
	if err := s.createTables(); err != nil {
		return err
	}
	return s.seed()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: open database: %v", ErrStorageUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: ping database: %v", ErrStorageUnavailable, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: enable foreign keys: %v", ErrStorageUnavailable, err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user (
			id TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			total_xp INTEGER DEFAULT 0,
			last_sentiment TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			emoji TEXT,
			category TEXT,
			frequency TEXT,
			effort TEXT,
			streak INTEGER DEFAULT 0,
			best_streak INTEGER DEFAULT 0,
			last_completed DATETIME,
			total_completions INTEGER DEFAULT 0,
			emotional_support INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS badges (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			emoji TEXT,
			unlocked INTEGER DEFAULT 0,
			unlocked_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS completions (
			id TEXT PRIMARY KEY,
			habit_id TEXT NOT NULL,
			sentiment TEXT,
			reflection TEXT,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_habit_id ON completions(habit_id, completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// seed inserts the user row and the locked badge set, skipping rows that
// already exist.
func (s *SQLiteStore) seed() error {
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO user (id, level, total_xp) VALUES (?, 1, 0)`,
		models.DefaultUserID,
	); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	for _, b := range models.SeedBadges() {
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO badges (id, name, description, emoji, unlocked) VALUES (?, ?, ?, ?, 0)`,
			b.ID, b.Name, b.Description, b.Emoji,
		); err != nil {
			return fmt.Errorf("seed badge %s: %w", b.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetUserData(userID string) (models.UserProgress, error) {
	row := s.db.QueryRow(
		`SELECT level, total_xp, last_sentiment FROM user WHERE id = ?`, userID)

	var p models.UserProgress
	var sentiment sql.NullString
	if err := row.Scan(&p.Level, &p.TotalXP, &sentiment); err != nil {
		if err == sql.ErrNoRows {
			return models.UserProgress{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return models.UserProgress{}, fmt.Errorf("get user: %w", err)
	}
	if sentiment.Valid {
		v := models.Sentiment(sentiment.String)
		p.LastSentiment = &v
	}
	return p, nil
}

func (s *SQLiteStore) UpdateUserXP(userID string, totalXP, level int) error {
	_, err := s.db.Exec(
		`UPDATE user SET total_xp = ?, level = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		totalXP, level, userID,
	)
	if err != nil {
		return fmt.Errorf("update user xp: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateUserSentiment(userID string, sentiment models.Sentiment) error {
	_, err := s.db.Exec(
		`UPDATE user SET last_sentiment = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(sentiment), userID,
	)
	if err != nil {
		return fmt.Errorf("update user sentiment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, emoji, category, frequency, effort, streak, best_streak,
		       last_completed, total_completions, emotional_support, created_at
		FROM habits ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) CreateHabit(h models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (
			id, name, emoji, category, frequency, effort, streak, best_streak,
			last_completed, total_completions, emotional_support, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Emoji, string(h.Category), string(h.Frequency), string(h.Effort),
		h.Streak, h.BestStreak, nullTime(h.LastCompleted), h.TotalCompletions,
		boolToInt(h.EmotionalSupport), h.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: habit %s", ErrConstraintViolation, h.ID)
		}
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateHabit(h models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET
			name = ?, emoji = ?, category = ?, frequency = ?, effort = ?,
			streak = ?, best_streak = ?, last_completed = ?, total_completions = ?,
			emotional_support = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		h.Name, h.Emoji, string(h.Category), string(h.Frequency), string(h.Effort),
		h.Streak, h.BestStreak, nullTime(h.LastCompleted), h.TotalCompletions,
		boolToInt(h.EmotionalSupport), h.ID,
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: habit %s", ErrNotFound, h.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: habit %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) GetAllBadges() ([]models.Badge, error) {
	rows, err := s.db.Query(`SELECT id, name, description, emoji, unlocked, unlocked_at FROM badges`)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		var b models.Badge
		var unlocked int
		var description, unlockedAt sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &description, &b.Emoji, &unlocked, &unlockedAt); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		b.Description = description.String
		b.Unlocked = unlocked == 1
		if unlockedAt.Valid {
			if t, err := time.Parse(time.RFC3339, unlockedAt.String); err == nil {
				b.UnlockedAt = &t
			}
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// UnlockBadge flips a badge to unlocked. Re-unlocking is a no-op; the
// original unlock timestamp is preserved.
func (s *SQLiteStore) UnlockBadge(id string, at time.Time) error {
	res, err := s.db.Exec(
		`UPDATE badges SET unlocked = 1, unlocked_at = ? WHERE id = ? AND unlocked = 0`,
		at.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("unlock badge: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM badges WHERE id = ?`, id).Scan(&exists); err == nil && exists == 0 {
			return fmt.Errorf("%w: badge %s", ErrNotFound, id)
		}
	}
	return nil
}

func (s *SQLiteStore) RecordCompletion(rec models.CompletionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO completions (id, habit_id, sentiment, reflection, completed_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.HabitID, string(rec.Sentiment), rec.Reflection,
		rec.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: completion %s", ErrConstraintViolation, rec.ID)
		}
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCompletionsForHabit(habitID string) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, sentiment, reflection, completed_at
		FROM completions WHERE habit_id = ? ORDER BY completed_at DESC`, habitID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var recs []models.CompletionRecord
	for rows.Next() {
		var rec models.CompletionRecord
		var sentiment, reflection, completedAt sql.NullString
		if err := rows.Scan(&rec.ID, &rec.HabitID, &sentiment, &reflection, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		rec.Sentiment = models.Sentiment(sentiment.String)
		rec.Reflection = reflection.String
		if completedAt.Valid {
			if t, err := time.Parse(time.RFC3339, completedAt.String); err == nil {
				rec.CompletedAt = t
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// ExportAllData assembles the full GameState. CompletedToday is recomputed
// from the completion log for the current calendar day rather than stored.
func (s *SQLiteStore) ExportAllData() (models.GameState, error) {
	user, err := s.GetUserData(models.DefaultUserID)
	if err != nil {
		return models.GameState{}, err
	}
	habits, err := s.GetAllHabits()
	if err != nil {
		return models.GameState{}, err
	}
	badges, err := s.GetAllBadges()
	if err != nil {
		return models.GameState{}, err
	}

	// Stored timestamps are UTC text; the calendar day has to be decided
	// in the local zone, so recent rows are filtered in Go instead of SQL.
	now := time.Now()
	today := models.DayOf(now)
	cutoff := now.AddDate(0, 0, -2).UTC().Format(time.RFC3339)
	rows, err := s.db.Query(
		`SELECT habit_id, completed_at FROM completions WHERE completed_at >= ?`, cutoff)
	if err != nil {
		return models.GameState{}, fmt.Errorf("completed today: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var completedToday []string
	for rows.Next() {
		var id string
		var at sql.NullString
		if err := rows.Scan(&id, &at); err != nil {
			return models.GameState{}, fmt.Errorf("scan completed today: %w", err)
		}
		if !at.Valid || seen[id] {
			continue
		}
		t, err := parseStoredTime(at.String)
		if err != nil || models.DayOf(t) != today {
			continue
		}
		seen[id] = true
		completedToday = append(completedToday, id)
	}
	if err := rows.Err(); err != nil {
		return models.GameState{}, err
	}

	state := models.GameState{
		UserID:         models.DefaultUserID,
		Level:          user.Level,
		TotalXP:        user.TotalXP,
		Habits:         habits,
		Badges:         badges,
		CompletedToday: completedToday,
		LastSentiment:  user.LastSentiment,
	}
	if len(completedToday) > 0 {
		state.CompletedOn = today
	}
	return state, nil
}

// ResetDatabase clears every row for the current user and re-seeds the
// locked badge set. Irreversible.
func (s *SQLiteStore) ResetDatabase() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM completions`,
		`DELETE FROM habits`,
		`DELETE FROM badges`,
		`DELETE FROM user`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return s.seed()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var category, frequency, effort string
	var lastCompleted, createdAt sql.NullString
	var support int

	err := row.Scan(
		&h.ID, &h.Name, &h.Emoji, &category, &frequency, &effort,
		&h.Streak, &h.BestStreak, &lastCompleted, &h.TotalCompletions,
		&support, &createdAt,
	)
	if err != nil {
		return models.Habit{}, fmt.Errorf("scan habit: %w", err)
	}

	h.Category = models.Category(category)
	h.Frequency = models.Frequency(frequency)
	h.Effort = models.Effort(effort)
	h.EmotionalSupport = support == 1
	if lastCompleted.Valid {
		if t, err := time.Parse(time.RFC3339, lastCompleted.String); err == nil {
			h.LastCompleted = &t
		}
	}
	if createdAt.Valid {
		if t, err := parseStoredTime(createdAt.String); err == nil {
			h.CreatedAt = t
		}
	}
	return h, nil
}

// parseStoredTime accepts both RFC3339 values written by this store and
// the CURRENT_TIMESTAMP format sqlite produces for defaulted columns.
func parseStoredTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", v)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint") ||
		strings.Contains(msg, "constraint failed")
}
